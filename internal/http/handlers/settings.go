package handlers

import (
	"fmt"
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/repositories"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/admin/settings
func GetSettings(c *gin.Context) {
	svc := services.SettingsService{
		Repo:      repositories.SettingsRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	all, err := svc.All()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": all})
}

type updateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// PUT /api/v1/admin/settings
func UpdateSetting(c *gin.Context) {
	var req updateSettingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.SettingsService{
		Repo:      repositories.SettingsRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	if err := svc.Update(req.Key, req.Value); err != nil {
		RespondDomainError(c, err)
		return
	}

	auditAction(c, "settings.update", "app_settings", fmt.Sprintf("key=%s", req.Key))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"key": req.Key, "value": req.Value}})
}
