package model

// MarketContext 评分用的参考指标，一次评分内不变
type MarketContext struct {
	EmaFast     float64  `json:"ema_fast"`
	EmaSlow     float64  `json:"ema_slow"`
	Vwap        *float64 `json:"vwap,omitempty"`
	AtrBaseline float64  `json:"atr_baseline"`
}

func (c MarketContext) Check() error {
	if err := finite("context.ema_fast", c.EmaFast); err != nil {
		return err
	}
	if err := finite("context.ema_slow", c.EmaSlow); err != nil {
		return err
	}
	if c.Vwap != nil {
		if err := finite("context.vwap", *c.Vwap); err != nil {
			return err
		}
	}
	return finite("context.atr_baseline", c.AtrBaseline)
}

// PlaceholderContext 调用方没有提供行情上下文时，从告警自身推导
func PlaceholderContext(a Alert) MarketContext {
	vwap := a.Price * 0.995
	return MarketContext{
		EmaFast:     a.Indicators.EMA20,
		EmaSlow:     a.Indicators.EMA20 * 0.99,
		Vwap:        &vwap,
		AtrBaseline: a.Indicators.ATR,
	}
}

// Kline K线
type Kline struct {
	Timestamp int64   `json:"time"`
	Open      float64 `json:"open"`
	Close     float64 `json:"close"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Vol       float64 `json:"vol"` // 成交量 以币为单位
}
