package model

import "time"

// ValidationResult 评分结果，Reasons 按检查顺序记录
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Action 决策动作，决策、执行、存储共用
type Action string

const (
	ActionEnterLong  Action = "ENTER_LONG"
	ActionEnterShort Action = "ENTER_SHORT"
	ActionIgnore     Action = "IGNORE"
)

func (a Action) Valid() bool {
	switch a {
	case ActionEnterLong, ActionEnterShort, ActionIgnore:
		return true
	}
	return false
}

type OrderType string

const (
	// 市价
	Market OrderType = "market"
)

// TradeDecision 交易决策；IGNORE 时 Size 为 0 且没有止盈止损
type TradeDecision struct {
	Action     Action    `json:"action"`
	Symbol     string    `json:"symbol"`
	OrderType  OrderType `json:"order_type"`
	Size       float64   `json:"size"`
	StopLoss   *float64  `json:"stop_loss"`
	TakeProfit *float64  `json:"take_profit"`
	Confidence int       `json:"confidence"`
}

// IgnoreDecision 构造一个忽略决策
func IgnoreDecision(symbol string, confidence int) TradeDecision {
	return TradeDecision{
		Action:     ActionIgnore,
		Symbol:     symbol,
		OrderType:  Market,
		Confidence: confidence,
	}
}

type ExecutionStatus string

const (
	StatusIgnored   ExecutionStatus = "ignored"
	StatusFilled    ExecutionStatus = "filled"
	StatusSubmitted ExecutionStatus = "submitted"
	StatusFailed    ExecutionStatus = "failed"
)

// ExecutionResult 执行结果；失败时没有订单号
type ExecutionResult struct {
	Success      bool            `json:"success"`
	OrderID      *string         `json:"order_id"`
	Status       ExecutionStatus `json:"status"`
	ExecutedSize float64         `json:"executed_size"`
	Error        *string         `json:"error,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// FailedExecution 执行失败统一用这个构造
func FailedExecution(err error, now time.Time) ExecutionResult {
	msg := err.Error()
	return ExecutionResult{
		Success:   false,
		Status:    StatusFailed,
		Error:     &msg,
		Timestamp: now,
	}
}

// RiskState 当前敞口与当日亏损，由调用方持有，引擎只读
type RiskState struct {
	OpenPositions     map[string]float64 `json:"open_positions"`      // symbol -> 占权益比例
	DailyLossFraction float64            `json:"daily_loss_fraction"` // 当日亏损占权益比例
}

// Exposure 没有记录的币种敞口为 0
func (r RiskState) Exposure(symbol string) float64 {
	return r.OpenPositions[symbol]
}
