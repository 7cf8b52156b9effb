package webhook

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"tradeagent/internal/model"
	"tradeagent/internal/service"
	"tradeagent/pkg/errors"
	"tradeagent/pkg/errors/ecode"
	"tradeagent/pkg/logger"
	"tradeagent/pkg/response"
	"tradeagent/pkg/validator"
)

// Runner 流水线入口
type Runner interface {
	Run(ctx context.Context, alert model.Alert, mctx model.MarketContext) (*service.PipelineResult, error)
}

type Handler struct {
	pipeline Runner
}

func NewHandler(pipeline Runner) *Handler {
	return &Handler{pipeline: pipeline}
}

// HandlerWebhook 接收 TradingView 告警，返回执行结果
func (h *Handler) HandlerWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.WebhookRequest
		if err := ctx.ShouldBindWith(&req, binding.JSON); err != nil {
			response.JSON(ctx, errors.New(ecode.InvalidParams, validator.Translate(err)), nil)
			return
		}

		alert := req.ToAlert()
		res, err := h.pipeline.Run(ctx.Request.Context(), alert, req.MarketContext(alert))
		if err != nil {
			var inputErr *model.InputError
			if stderrors.As(err, &inputErr) {
				response.JSON(ctx, errors.Wrap(err, ecode.InvalidParams, "invalid alert"), nil)
				return
			}
			logger.Error("[Webhook] pipeline failed",
				logger.Pair("symbol", alert.Symbol),
				logger.Pair("err", err.Error()))
			response.JSON(ctx, errors.Wrap(err, ecode.ServerErr, "pipeline failed"), nil)
			return
		}

		ctx.Header("X-Run-Id", strconv.FormatInt(res.RunID, 10))
		response.JSON(ctx, nil, res.Execution)
	}
}
