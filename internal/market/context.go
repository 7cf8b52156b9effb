package market

import (
	"errors"
	"fmt"

	"github.com/markcheno/go-talib"

	"tradeagent/internal/model"
)

const (
	EmaFastPeriod = 20
	EmaSlowPeriod = 50
	AtrPeriod     = 14
)

var ErrNotEnoughKlines = errors.New("not enough klines")

func split(klines []model.Kline) (highs, lows, closes []float64) {
	highs = make([]float64, len(klines))
	lows = make([]float64, len(klines))
	closes = make([]float64, len(klines))
	for i, k := range klines {
		highs[i] = k.High
		lows[i] = k.Low
		closes[i] = k.Close
	}
	return
}

// BuildContext 用K线计算评分上下文，K线按时间从旧到新
// ema_fast/ema_slow 取最新值，atr_baseline 取整段 ATR 的均值
func BuildContext(klines []model.Kline) (model.MarketContext, error) {
	if len(klines) < EmaSlowPeriod {
		return model.MarketContext{}, fmt.Errorf("%w: need %d, got %d", ErrNotEnoughKlines, EmaSlowPeriod, len(klines))
	}
	highs, lows, closes := split(klines)

	fast := talib.Ema(closes, EmaFastPeriod)
	slow := talib.Ema(closes, EmaSlowPeriod)
	atr := talib.Atr(highs, lows, closes, AtrPeriod)

	// talib 前 period 个值无效
	sum, n := 0.0, 0
	for i := AtrPeriod; i < len(atr); i++ {
		sum += atr[i]
		n++
	}
	baseline := 0.0
	if n > 0 {
		baseline = sum / float64(n)
	}

	ctx := model.MarketContext{
		EmaFast:     fast[len(fast)-1],
		EmaSlow:     slow[len(slow)-1],
		AtrBaseline: baseline,
	}
	if vwap, ok := VWAP(klines); ok {
		ctx.Vwap = &vwap
	}
	return ctx, nil
}

// VWAP 以典型价 (H+L+C)/3 加权，没有成交量时返回 false
func VWAP(klines []model.Kline) (float64, bool) {
	pv, vol := 0.0, 0.0
	for _, k := range klines {
		typical := (k.High + k.Low + k.Close) / 3
		pv += typical * k.Vol
		vol += k.Vol
	}
	if vol <= 0 {
		return 0, false
	}
	return pv / vol, true
}
