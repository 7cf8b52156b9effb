package exchange

import (
	"context"

	"tradeagent/internal/model"
)

// Backend 执行后端，模拟盘和实盘各一个实现
type Backend interface {
	// 提交一个进场决策，IGNORE 不会走到这里
	Submit(ctx context.Context, decision model.TradeDecision) (model.ExecutionResult, error)
}

// Exchange 外部交易所接口，实盘后端通过它下单
type Exchange interface {
	// 下单
	PlaceOrder(ctx context.Context, order *model.Order) (*model.OrderResponse, error)
}
