package signal

import "tradeagent/internal/model"

// 每项检查的得分
const (
	scoreTrend      = 20
	scoreVwap       = 10
	scoreRsi        = 25
	scoreMacd       = 15
	scoreVolatility = 10

	// 原始累计分达到该值即视为有效（在截断到 100 之前判断）
	validThreshold = 40
	maxConfidence  = 100

	rsiOversold   = 30
	rsiOverbought = 70

	// ATR 超过基线的倍数视为波动放大
	atrElevatedMultiple = 1.5
)

const (
	ReasonTrendAligned    = "EMA trend aligned"
	ReasonTrendMisaligned = "EMA trend misaligned"
	ReasonAboveVwap       = "Price above VWAP"
	ReasonBelowVwap       = "Price below VWAP"
	ReasonRsiOversold     = "RSI oversold"
	ReasonRsiOverbought   = "RSI overbought"
	ReasonRsiNeutral      = "RSI neutral"
	ReasonMacdBullish     = "MACD bullish"
	ReasonMacdBearish     = "MACD bearish"
	ReasonMacdUnconfirmed = "MACD unconfirmed"
	ReasonAtrNormal       = "ATR normal"
	ReasonAtrElevated     = "ATR elevated"
)

// Validator 根据行情上下文给告警打分，无状态，可并发调用
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Evaluate 依次执行5项检查，每项都会记录一条原因
func (v *Validator) Evaluate(alert model.Alert, ctx model.MarketContext) (model.ValidationResult, error) {
	if err := alert.Check(); err != nil {
		return model.ValidationResult{}, err
	}
	if err := ctx.Check(); err != nil {
		return model.ValidationResult{}, err
	}

	ind := alert.Indicators
	reasons := make([]string, 0, 5)
	score := 0

	// 1. 趋势：EMA20 同时与慢线和 RSI 比较，沿用原有规则
	if ind.EMA20 >= ctx.EmaSlow && ind.EMA20 >= ind.RSI {
		reasons = append(reasons, ReasonTrendAligned)
		score += scoreTrend
	} else {
		reasons = append(reasons, ReasonTrendMisaligned)
	}

	// 2. VWAP，没有时跳过
	if ctx.Vwap != nil {
		if alert.Price >= *ctx.Vwap {
			reasons = append(reasons, ReasonAboveVwap)
			score += scoreVwap
		} else {
			reasons = append(reasons, ReasonBelowVwap)
		}
	}

	// 3. RSI 确认
	switch {
	case ind.RSI < rsiOversold && alert.Signal == model.Buy:
		reasons = append(reasons, ReasonRsiOversold)
		score += scoreRsi
	case ind.RSI > rsiOverbought && alert.Signal == model.Sell:
		reasons = append(reasons, ReasonRsiOverbought)
		score += scoreRsi
	default:
		reasons = append(reasons, ReasonRsiNeutral)
	}

	// 4. MACD 确认
	switch {
	case ind.MACD > 0 && alert.Signal == model.Buy:
		reasons = append(reasons, ReasonMacdBullish)
		score += scoreMacd
	case ind.MACD < 0 && alert.Signal == model.Sell:
		reasons = append(reasons, ReasonMacdBearish)
		score += scoreMacd
	default:
		reasons = append(reasons, ReasonMacdUnconfirmed)
	}

	// 5. 波动率，扣分不低于 0
	if ind.ATR <= atrElevatedMultiple*ctx.AtrBaseline {
		reasons = append(reasons, ReasonAtrNormal)
		score += scoreVolatility
	} else {
		reasons = append(reasons, ReasonAtrElevated)
		score = max(score-scoreVolatility, 0)
	}

	return model.ValidationResult{
		Valid:      isValid(score),
		Confidence: clampConfidence(score),
		Reasons:    reasons,
	}, nil
}

func isValid(raw int) bool {
	return raw >= validThreshold
}

func clampConfidence(raw int) int {
	return min(max(raw, 0), maxConfidence)
}
