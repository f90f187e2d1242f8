package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slack_form_bot/internal/config"
	"slack_form_bot/internal/handler"
	"slack_form_bot/internal/logger"
)

// NewEngine wires the adapter into a gin engine with the bot's routes and middleware.
func NewEngine(cfg *config.Config, a *Adapter) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Slack can post everything to one request URL; the separate paths
	// exist for apps configured with one URL per feature.
	g := r.Group("/slack", HandleSlackRetry())
	g.POST("/events", a.HandleRequest)
	g.POST("/commands", a.HandleRequest)
	g.POST("/interactions", a.HandleRequest)

	return r
}

// HandleRequest verifies and dispatches one Slack request, then writes its ack.
func (a *Adapter) HandleRequest(c *gin.Context) {
	l := a.logger.With(zap.String(logger.RequestIDKey, c.GetString(logger.RequestIDKey)))

	req, err := a.VerifyAndParse(c.Request)
	switch {
	case errors.Is(err, ErrVerification):
		l.Warn("rejected unverified request", zap.Error(err))
		c.String(http.StatusUnauthorized, "invalid signature")
		return
	case errors.Is(err, ErrUnsupportedPayload):
		l.Info("ignored unsupported payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	case err != nil:
		l.Warn("failed to parse slack request", zap.Error(err))
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	if req.Challenge != "" {
		c.Header("Content-Type", "text/plain")
		c.String(http.StatusOK, req.Challenge)
		return
	}
	if req.Envelope == nil {
		c.Status(http.StatusOK)
		return
	}

	ack, err := a.dispatcher.Dispatch(c.Request.Context(), req.Envelope)
	switch {
	case errors.Is(err, handler.ErrUnroutableEvent):
		l.Info("ignored unroutable event", zap.Error(err))
		c.Status(http.StatusOK)
		return
	case err != nil:
		l.Error("failed to handle slack request",
			zap.String("kind", req.Envelope.Kind()),
			zap.String("route_key", req.Envelope.RouteKey()),
			zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to handle request")
		return
	}

	resp, err := Render(ack)
	if err != nil {
		l.Error("failed to render ack", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render response")
		return
	}
	c.Data(resp.StatusCode, resp.ContentType, resp.Body)
}
