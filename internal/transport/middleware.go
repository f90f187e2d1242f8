package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slack_form_bot/internal/logger"
)

// HandleSlackRetry is a middleware that acks Slack retry requests without
// dispatching them again: the first delivery already ran the handler.
func HandleSlackRetry() gin.HandlerFunc {
	return func(c *gin.Context) {
		retryNum := c.GetHeader("X-Slack-Retry-Num")
		retryReason := c.GetHeader("X-Slack-Retry-Reason")

		if retryNum != "" {
			logger.GetLogger().Info("skipped slack retry",
				zap.String(logger.RequestIDKey, c.GetString(logger.RequestIDKey)),
				zap.String("path", c.Request.URL.Path),
				zap.String("retry_num", retryNum),
				zap.String("retry_reason", retryReason))
			c.String(http.StatusOK, "ok (retry skipped)")
			c.Abort()
			return
		}
		c.Next()
	}
}
