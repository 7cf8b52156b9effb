package exchange

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"tradeagent/internal/model"
)

// SimulatedOrderExecutor 模拟下单，立即全部成交
type SimulatedOrderExecutor struct {
	now func() time.Time
}

func NewSimulatedOrderExecutor() *SimulatedOrderExecutor {
	return &SimulatedOrderExecutor{now: time.Now}
}

func (s *SimulatedOrderExecutor) Submit(ctx context.Context, d model.TradeDecision) (model.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return model.ExecutionResult{}, err
	}
	orderID := SimulatedOrderID(d)
	return model.ExecutionResult{
		Success:      true,
		OrderID:      &orderID,
		Status:       model.StatusFilled,
		ExecutedSize: d.Size,
		Timestamp:    s.now().UTC(),
	}, nil
}

// SimulatedOrderID 相同的决策总是得到相同的订单号
func SimulatedOrderID(d model.TradeDecision) string {
	key := string(d.Action) + "|" + strconv.FormatFloat(d.Size, 'f', -1, 64) + "|" + d.Symbol
	return fmt.Sprintf("paper-%s-%016x", d.Symbol, xxhash.Sum64String(key))
}
