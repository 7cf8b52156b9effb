package model

import "time"

/*
来源于 TradingView

	{
	  "symbol": "ETH",
	  "price": 1700,
	  "signal": "buy",
	  "timeframe": "5m",
	  "indicators": {"RSI": 25, "MACD": 0.01, "EMA20": 1695, "ATR": 10},
	  "timestamp": "2025-08-10T21:54:30+08:00",
	  "context": {"ema_fast": 1690, "ema_slow": 1680, "vwap": 1690, "atr_baseline": 12}
	}
*/
type WebhookRequest struct {
	Symbol     string             `json:"symbol" binding:"required,oneof=ETH BTC-USD SOL"`
	Price      float64            `json:"price" binding:"gt=0"`
	Signal     string             `json:"signal" binding:"required,oneof=buy sell"`
	Timeframe  string             `json:"timeframe" binding:"required"`
	Indicators *IndicatorsRequest `json:"indicators" binding:"required"`
	Timestamp  *time.Time         `json:"timestamp"`
	Context    *MarketContext     `json:"context"` // 可选，不传时从告警推导
}

// IndicatorsRequest 指针字段用于区分 "未传" 和 0
type IndicatorsRequest struct {
	RSI   *float64 `json:"RSI" binding:"required"`
	MACD  *float64 `json:"MACD" binding:"required"`
	EMA20 *float64 `json:"EMA20" binding:"required"`
	ATR   *float64 `json:"ATR" binding:"required"`
}

func (r WebhookRequest) ToAlert() Alert {
	return Alert{
		Symbol:    r.Symbol,
		Price:     r.Price,
		Signal:    Signal(r.Signal),
		Timeframe: r.Timeframe,
		Indicators: Indicators{
			RSI:   *r.Indicators.RSI,
			MACD:  *r.Indicators.MACD,
			EMA20: *r.Indicators.EMA20,
			ATR:   *r.Indicators.ATR,
		},
		Timestamp: r.Timestamp,
	}
}

// MarketContext 请求里的上下文优先，否则使用占位上下文
func (r WebhookRequest) MarketContext(a Alert) MarketContext {
	if r.Context != nil {
		return *r.Context
	}
	return PlaceholderContext(a)
}

// ClosePositionRequest 手动平仓
type ClosePositionRequest struct {
	ExitPrice *float64 `json:"exit_price" binding:"required,gt=0"`
}
