package risk

import (
	"context"
	"fmt"
	"time"

	"tradeagent/internal/dao"
	"tradeagent/internal/model"
)

// RiskControl 从持仓表汇总当前风险状态，给决策引擎读取
type RiskControl struct {
	positions dao.PositionDao
	equity    float64
	now       func() time.Time
}

func NewRiskControl(positions dao.PositionDao, settings Settings) *RiskControl {
	return &RiskControl{
		positions: positions,
		equity:    settings.AccountEquity,
		now:       time.Now,
	}
}

// Snapshot 敞口 = 未平仓名义价值 / 权益；当日亏损按 UTC 零点以来平仓的已实现盈亏计算，盈利记为 0
func (r *RiskControl) Snapshot(ctx context.Context) (model.RiskState, error) {
	open, err := r.positions.ListOpen(ctx, "")
	if err != nil {
		return model.RiskState{}, fmt.Errorf("load open positions: %w", err)
	}
	exposure := make(map[string]float64, len(open))
	for _, p := range open {
		exposure[p.Symbol] += p.Notional() / r.equity
	}

	pnl, err := r.positions.RealizedPnlSince(ctx, startOfDay(r.now()))
	if err != nil {
		return model.RiskState{}, fmt.Errorf("load realized pnl: %w", err)
	}
	loss := 0.0
	if pnl < 0 {
		loss = -pnl / r.equity
	}
	return model.RiskState{OpenPositions: exposure, DailyLossFraction: loss}, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
