package model

// Order 提交给交易所的下单请求
type Order struct {
	ClientOrderID string
	Symbol        string
	Side          Signal
	Quantity      float64
	OrderType     OrderType
	TPPrice       float64
	SLPrice       float64
}

type OrderResponse struct {
	OrderId string
	Message string
}

// NewOrder 把进场决策转换为下单请求
func NewOrder(d TradeDecision, clientOrderID string) Order {
	side := Buy
	if d.Action == ActionEnterShort {
		side = Sell
	}
	o := Order{
		ClientOrderID: clientOrderID,
		Symbol:        d.Symbol,
		Side:          side,
		Quantity:      d.Size,
		OrderType:     d.OrderType,
	}
	if d.TakeProfit != nil {
		o.TPPrice = *d.TakeProfit
	}
	if d.StopLoss != nil {
		o.SLPrice = *d.StopLoss
	}
	return o
}
