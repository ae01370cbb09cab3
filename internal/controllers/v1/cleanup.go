package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/models"
)

// @Summary		Delete everything
// @Description	Permanently deletes all resources of the requesting user
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	// Payments reference entries, delete them first. Soft-deleted entries
	// still hold payments, include them.
	ownedEntryIDs := tx.Unscoped().Model(&models.Entry{}).Select("entries.id").Where("entries.owner_id = ?", s.UserID)

	err = tx.Unscoped().Where("payments.entry_id IN (?)", ownedEntryIDs).Delete(&models.Payment{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		tx.Rollback()
		return
	}

	err = tx.Unscoped().Where("entries.owner_id = ?", s.UserID).Delete(&models.Entry{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		tx.Rollback()
		return
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
