package position

import (
	"context"
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cast"

	"tradeagent/internal/dao"
	"tradeagent/internal/model"
	"tradeagent/internal/model/entity"
	"tradeagent/pkg/errors"
	"tradeagent/pkg/errors/ecode"
	"tradeagent/pkg/response"
	"tradeagent/pkg/validator"
)

type Service interface {
	List(ctx context.Context, symbol string) ([]entity.Position, error)
	Close(ctx context.Context, id uint64, exitPrice float64) (*entity.Position, error)
}

type Handler struct {
	ps Service
}

func NewHandler(ps Service) *Handler {
	return &Handler{ps: ps}
}

// PositionGetList 未平仓位，可按 symbol 过滤
func (h *Handler) PositionGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		list, err := h.ps.List(ctx.Request.Context(), ctx.Query("symbol"))
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ServerErr, "list positions failed"), nil)
			return
		}
		response.JSON(ctx, nil, list)
	}
}

// PositionClose 按平仓价结算
func (h *Handler) PositionClose() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := cast.ToUint64E(ctx.Param("id"))
		if err != nil || id == 0 {
			response.JSON(ctx, errors.New(ecode.InvalidParams, "invalid position id"), nil)
			return
		}
		var req model.ClosePositionRequest
		if err := ctx.ShouldBindWith(&req, binding.JSON); err != nil {
			response.JSON(ctx, errors.New(ecode.InvalidParams, validator.Translate(err)), nil)
			return
		}

		p, err := h.ps.Close(ctx.Request.Context(), id, *req.ExitPrice)
		var inputErr *model.InputError
		switch {
		case err == nil:
			response.JSON(ctx, nil, p)
		case stderrors.Is(err, dao.ErrPositionNotFound):
			response.JSON(ctx, errors.Wrap(err, ecode.NotFound, "close position failed"), nil)
		case stderrors.As(err, &inputErr):
			response.JSON(ctx, errors.Wrap(err, ecode.InvalidParams, "close position failed"), nil)
		default:
			response.JSON(ctx, errors.Wrap(err, ecode.ServerErr, "close position failed"), nil)
		}
	}
}
