package model

import (
	"math"
	"time"
)

// Signal 信号方向
type Signal string

const (
	Buy  Signal = "buy"
	Sell Signal = "sell"
)

// Symbols 允许交易的币种
var Symbols = []string{"ETH", "BTC-USD", "SOL"}

// Indicators 告警附带的指标快照
type Indicators struct {
	RSI   float64 `json:"RSI"`
	MACD  float64 `json:"MACD"`
	EMA20 float64 `json:"EMA20"`
	ATR   float64 `json:"ATR"`
}

// Alert 外部推送的交易信号，收到后不再修改
type Alert struct {
	Symbol     string     `json:"symbol"`
	Price      float64    `json:"price"`
	Signal     Signal     `json:"signal"`
	Timeframe  string     `json:"timeframe"`
	Indicators Indicators `json:"indicators"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Check 拒绝 NaN/Inf 以及非正价格，进入评分前必须通过
func (a Alert) Check() error {
	if !IsAllowedSymbol(a.Symbol) {
		return &InputError{Field: "symbol", Reason: "is not supported"}
	}
	if err := CheckPrice("price", a.Price); err != nil {
		return err
	}
	if a.Signal != Buy && a.Signal != Sell {
		return &InputError{Field: "signal", Reason: "must be buy or sell"}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"indicators.RSI", a.Indicators.RSI},
		{"indicators.MACD", a.Indicators.MACD},
		{"indicators.EMA20", a.Indicators.EMA20},
		{"indicators.ATR", a.Indicators.ATR},
	} {
		if err := finite(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// CheckPrice 价格必须是有限正数
func CheckPrice(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &InputError{Field: field, Reason: "must be positive"}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) {
		return &InputError{Field: field, Reason: "is NaN"}
	}
	if math.IsInf(v, 0) {
		return &InputError{Field: field, Reason: "is infinite"}
	}
	return nil
}

// IsAllowedSymbol 币种是否在白名单内
func IsAllowedSymbol(symbol string) bool {
	for _, s := range Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
