package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradeagent/internal/model"
	"tradeagent/pkg/logger"
)

// LiveOrderExecutor 实盘下单；没有接入交易所时只登记订单，不会成交
type LiveOrderExecutor struct {
	venue Exchange
	now   func() time.Time
}

// NewLiveOrderExecutor venue 可以为 nil
func NewLiveOrderExecutor(venue Exchange) *LiveOrderExecutor {
	return &LiveOrderExecutor{venue: venue, now: time.Now}
}

func (l *LiveOrderExecutor) Submit(ctx context.Context, d model.TradeDecision) (model.ExecutionResult, error) {
	clientOrderID := uuid.NewString()
	orderID := clientOrderID

	if l.venue != nil {
		order := model.NewOrder(d, clientOrderID)
		resp, err := l.venue.PlaceOrder(ctx, &order)
		if err != nil {
			return model.ExecutionResult{}, fmt.Errorf("place order %s: %w", d.Symbol, err)
		}
		if resp != nil && resp.OrderId != "" {
			orderID = resp.OrderId
		}
		logger.Info("[Live] order placed",
			logger.Pair("symbol", d.Symbol),
			logger.Pair("client_order_id", clientOrderID),
			logger.Pair("order_id", orderID))
	}

	return model.ExecutionResult{
		Success:      true,
		OrderID:      &orderID,
		Status:       model.StatusSubmitted,
		ExecutedSize: 0,
		Timestamp:    l.now().UTC(),
	}, nil
}
