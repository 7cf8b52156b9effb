package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tradeagent/internal/dao"
	"tradeagent/internal/model"
	"tradeagent/internal/model/entity"
	"tradeagent/pkg/logger"
)

// PositionService 模拟盘仓位查询与手动平仓
type PositionService struct {
	positions dao.PositionDao
	now       func() time.Time
}

func NewPositionService(positions dao.PositionDao) *PositionService {
	return &PositionService{positions: positions, now: time.Now}
}

func (ps *PositionService) List(ctx context.Context, symbol string) ([]entity.Position, error) {
	return ps.positions.ListOpen(ctx, symbol)
}

// Close 按平仓价结算盈亏，仓位不存在时返回 dao.ErrPositionNotFound
func (ps *PositionService) Close(ctx context.Context, id uint64, exitPrice float64) (*entity.Position, error) {
	if err := model.CheckPrice("exit_price", exitPrice); err != nil {
		return nil, err
	}
	p, err := ps.positions.GetOpen(ctx, id)
	if err != nil {
		return nil, err
	}

	pnl := RealizedPnl(*p, exitPrice)
	if err := ps.positions.ClosePosition(ctx, id, exitPrice, pnl); err != nil {
		return nil, err
	}

	closedAt := ps.now().UTC()
	p.ExitPrice = &exitPrice
	p.RealizedPnl = pnl
	p.ClosedAt = &closedAt

	logger.Info("[Position] closed",
		logger.Pair("id", id),
		logger.Pair("symbol", p.Symbol),
		logger.Pair("exit_price", exitPrice),
		logger.Pair("pnl", pnl))
	return p, nil
}

// RealizedPnl 多头 (exit-entry)*size，空头 (entry-exit)*size
func RealizedPnl(p entity.Position, exitPrice float64) float64 {
	diff := decimal.NewFromFloat(exitPrice).Sub(decimal.NewFromFloat(p.EntryPrice))
	if p.Side == string(model.ActionEnterShort) {
		diff = diff.Neg()
	}
	return diff.Mul(decimal.NewFromFloat(p.Size)).Round(8).InexactFloat64()
}
