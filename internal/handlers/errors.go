package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dadidelux/sheng-project/pkg/apperrors"
	"github.com/dadidelux/sheng-project/pkg/logger"
)

// respondError maps an error to its HTTP status and JSON body.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code >= 500 {
		logger.Error("request failed", "path", c.FullPath(), "error", appErr.Error())
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
