package dao

import (
	"context"
	"errors"
	"time"

	"tradeagent/internal/model/entity"
)

// ErrPositionNotFound 仓位不存在或已平仓
var ErrPositionNotFound = errors.New("position not found")

type PositionDao interface {
	OpenPosition(ctx context.Context, p *entity.Position) error
	// ListOpen 未平仓位，symbol 为空时返回全部
	ListOpen(ctx context.Context, symbol string) ([]entity.Position, error)
	GetOpen(ctx context.Context, id uint64) (*entity.Position, error)
	ClosePosition(ctx context.Context, id uint64, exitPrice, pnl float64) error
	// RealizedPnlSince since 之后平仓的已实现盈亏合计
	RealizedPnlSince(ctx context.Context, since time.Time) (float64, error)
}
