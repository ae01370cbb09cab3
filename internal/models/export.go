package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Export returns all entries of the owner for the backup endpoint,
// including soft-deleted ones.
func (Entry) Export(ownerID uuid.UUID) (json.RawMessage, error) {
	var entries []Entry
	err := DB.Unscoped().Where("owner_id = ?", ownerID).Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(entries)
}

// Export returns all payments on entries of the owner for the backup
// endpoint, including soft-deleted ones.
func (Payment) Export(ownerID uuid.UUID) (json.RawMessage, error) {
	var payments []Payment
	err := DB.Unscoped().
		Joins("JOIN entries ON entries.id = payments.entry_id").
		Where("entries.owner_id = ?", ownerID).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(payments)
}
