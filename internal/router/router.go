package router

import (
	"github.com/gin-gonic/gin"

	"tradeagent/internal/handler/ping"
	"tradeagent/internal/handler/position"
	"tradeagent/internal/handler/webhook"
	"tradeagent/internal/metrics"
	"tradeagent/internal/middleware"
)

type ApiRouter struct {
	webhookHandler  *webhook.Handler
	positionHandler *position.Handler
	secret          string
}

func NewApiRouter(wh *webhook.Handler, ph *position.Handler, secret string) *ApiRouter {
	return &ApiRouter{webhookHandler: wh, positionHandler: ph, secret: secret}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())
	g.GET("/health", ping.Health())
	g.GET("/metrics", gin.WrapH(metrics.Handler()))

	// TradingView 告警入口
	g.POST("/webhook",
		middleware.VerifySignature(api.secret),
		middleware.AntiDuplicateMiddleware(),
		api.webhookHandler.HandlerWebhook())

	base := g.Group("/api/v1")

	p := base.Group("/positions")
	{
		p.GET("", api.positionHandler.PositionGetList())
		p.POST("/:id/close", api.positionHandler.PositionClose())
	}
}
