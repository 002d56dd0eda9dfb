// internal/interfaces/http/handlers/response.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

// respondError writes {"error","code"} for err. Internal and unavailable
// failures are logged with the request id and never leak their cause.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	appErr := apperrors.As(err)
	status := apperrors.HTTPStatus(appErr)

	if appErr.Kind == apperrors.KindInternal || appErr.Kind == apperrors.KindUnavailable {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// badRequest reports a malformed JSON body
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(400, gin.H{
		"error": message,
		"code":  "invalid_request",
	})
}
