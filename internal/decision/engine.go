package decision

import (
	"math"

	"github.com/shopspring/decimal"

	"tradeagent/internal/model"
	"tradeagent/internal/risk"
	"tradeagent/pkg/logger"
)

const (
	// 低于该置信度不进场
	minConfidence = 50
	// 止损距离 = 2 * ATR
	stopAtrMultiple = 2.0
	// 止盈固定为止损距离的 2 倍
	rewardRiskMultiple = 2.0
	sizePrecision      = 4
)

// IgnoreReason 忽略原因，只用于日志，不进入决策结果
type IgnoreReason string

const (
	IgnoreNone           IgnoreReason = ""
	IgnoreInvalidSignal  IgnoreReason = "Signal not validated"
	IgnoreDailyLossLimit IgnoreReason = "Daily loss limit reached"
	IgnoreExposureLimit  IgnoreReason = "Symbol exposure limit reached"
	IgnoreLowConfidence  IgnoreReason = "Confidence too low"
)

// Engine 把通过校验的告警转换为交易决策，只持有静态风控参数
type Engine struct {
	settings risk.Settings
}

// NewEngine 参数非法时返回 *risk.ConfigurationError
func NewEngine(settings risk.Settings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Engine{settings: settings}, nil
}

func (e *Engine) Settings() risk.Settings {
	return e.settings
}

// Decide 按顺序匹配规则，命中即返回
func (e *Engine) Decide(alert model.Alert, validation model.ValidationResult, state model.RiskState) model.TradeDecision {
	d, reason := e.decide(alert, validation, state)
	if reason != IgnoreNone {
		logger.Debug("[Decision] ignore",
			logger.Pair("symbol", alert.Symbol),
			logger.Pair("reason", string(reason)),
			logger.Pair("confidence", validation.Confidence))
	}
	return d
}

func (e *Engine) decide(alert model.Alert, validation model.ValidationResult, state model.RiskState) (model.TradeDecision, IgnoreReason) {
	if !validation.Valid {
		return model.IgnoreDecision(alert.Symbol, validation.Confidence), IgnoreInvalidSignal
	}
	if state.DailyLossFraction >= e.settings.MaxDailyLoss {
		return model.IgnoreDecision(alert.Symbol, validation.Confidence), IgnoreDailyLossLimit
	}
	if state.Exposure(alert.Symbol) >= e.settings.MaxSymbolExposure {
		return model.IgnoreDecision(alert.Symbol, validation.Confidence), IgnoreExposureLimit
	}
	if validation.Confidence < minConfidence {
		return model.IgnoreDecision(alert.Symbol, validation.Confidence), IgnoreLowConfidence
	}

	stopLoss := stopLossPrice(alert)
	takeProfit := takeProfitPrice(alert)
	action := model.ActionEnterLong
	if alert.Signal == model.Sell {
		action = model.ActionEnterShort
	}
	return model.TradeDecision{
		Action:     action,
		Symbol:     alert.Symbol,
		OrderType:  model.Market,
		Size:       e.positionSize(alert, stopLoss),
		StopLoss:   &stopLoss,
		TakeProfit: &takeProfit,
		Confidence: validation.Confidence,
	}, IgnoreNone
}

func stopLossPrice(alert model.Alert) float64 {
	dist := stopAtrMultiple * alert.Indicators.ATR
	if alert.Signal == model.Buy {
		return alert.Price - dist
	}
	return alert.Price + dist
}

func takeProfitPrice(alert model.Alert) float64 {
	dist := rewardRiskMultiple * stopAtrMultiple * alert.Indicators.ATR
	if alert.Signal == model.Buy {
		return alert.Price + dist
	}
	return alert.Price - dist
}

// positionSize 按单笔风险计算数量，并受单币种敞口上限约束
func (e *Engine) positionSize(alert model.Alert, stopLoss float64) float64 {
	riskPerTrade := e.settings.AccountEquity * e.settings.MaxRiskPerTrade
	priceDistance := math.Abs(alert.Price - stopLoss)
	if priceDistance == 0 {
		return 0
	}
	rawSize := riskPerTrade / priceDistance
	maxSize := e.settings.AccountEquity * e.settings.MaxSymbolExposure / alert.Price
	size := decimal.NewFromFloat(math.Min(rawSize, maxSize)).Round(sizePrecision)
	// 与普通四舍五入不同：进位后超过敞口上限时改为截断，
	// 例如上限 2000/1700=1.17647 取 1.1764 而不是 1.1765
	if size.InexactFloat64() > maxSize {
		size = decimal.NewFromFloat(maxSize).Truncate(sizePrecision)
	}
	return size.InexactFloat64()
}
