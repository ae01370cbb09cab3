package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/httputil"
	"github.com/produce-ledger/backend/internal/models"
)

var backendVersion string

func RegisterBackupRoutes(r *gin.RouterGroup, version string) {
	backendVersion = version

	{
		r.OPTIONS("", OptionsBackup)
		r.GET("", GetBackup)
	}
}

type BackupResponse struct {
	Version      string                     `json:"version"`      // The version of the backend the backup was made with
	Data         map[string]json.RawMessage `json:"data"`         // The exported data
	CreationTime time.Time                  `json:"creationTime"` // Time the backup was created
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Backup
// @Success		204
// @Router			/v1/export [options]
func OptionsBackup(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Backup
// @Description	Exports all resources of the requesting user as JSON
// @Tags			Backup
// @Produce		json
// @Success		200	{object}	BackupResponse
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func GetBackup(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	resources := make(map[string]json.RawMessage)

	entries, err := models.Entry{}.Export(s.UserID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}
	resources["Entry"] = entries

	payments, err := models.Payment{}.Export(s.UserID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}
	resources["Payment"] = payments

	c.JSON(http.StatusOK, BackupResponse{
		Version:      backendVersion,
		Data:         resources,
		CreationTime: time.Now(),
	})
}
