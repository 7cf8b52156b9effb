package backtest

import (
	"fmt"

	"tradeagent/internal/decision"
	"tradeagent/internal/model"
	"tradeagent/internal/risk"
	"tradeagent/internal/signal"
	"tradeagent/pkg/logger"
)

// Recorder 逐笔记录回放结果
type Recorder interface {
	Record(v any) error
}

// Trade 一条告警的回放记录
type Trade struct {
	Index      int                 `json:"index"`
	Symbol     string              `json:"symbol"`
	Confidence int                 `json:"confidence"`
	Decision   model.TradeDecision `json:"decision"`
	Realized   float64             `json:"realized"`
}

type Result struct {
	NetPnl     float64               `json:"net_pnl"`
	Trades     []model.TradeDecision `json:"trades"`
	Entered    int                   `json:"entered"`
	Wins       int                   `json:"wins"`
	WinRate    float64               `json:"win_rate"`
	Expectancy float64               `json:"expectancy"`
}

// Backtester 固定行情上下文、空风险状态下依次回放告警
type Backtester struct {
	ctx       model.MarketContext
	validator *signal.Validator
	engine    *decision.Engine
	recorder  Recorder
}

func NewBacktester(ctx model.MarketContext, settings risk.Settings, recorder Recorder) (*Backtester, error) {
	if err := ctx.Check(); err != nil {
		return nil, err
	}
	engine, err := decision.NewEngine(settings)
	if err != nil {
		return nil, err
	}
	return &Backtester{ctx: ctx, validator: signal.NewValidator(), engine: engine, recorder: recorder}, nil
}

// Run 盈亏按命中止盈估算并乘以置信度；胜率和期望按全部告警数计算
func (b *Backtester) Run(alerts []model.Alert) (Result, error) {
	var res Result
	state := model.RiskState{OpenPositions: map[string]float64{}}

	for i, a := range alerts {
		v, err := b.validator.Evaluate(a, b.ctx)
		if err != nil {
			return Result{}, fmt.Errorf("alert %d: %w", i, err)
		}
		d := b.engine.Decide(a, v, state)
		res.Trades = append(res.Trades, d)

		realized := 0.0
		if d.Action != model.ActionIgnore {
			res.Entered++
			realized = expectedProfit(d) * float64(v.Confidence) / 100
			res.NetPnl += realized
			if realized > 0 {
				res.Wins++
			}
		}
		if b.recorder != nil {
			t := Trade{Index: i, Symbol: a.Symbol, Confidence: v.Confidence, Decision: d, Realized: realized}
			if err := b.recorder.Record(t); err != nil {
				logger.Warn("[Backtest] record trade failed", logger.Pair("index", i), logger.Pair("err", err.Error()))
			}
		}
	}

	if n := len(res.Trades); n > 0 {
		res.WinRate = float64(res.Wins) / float64(n)
		res.Expectancy = res.NetPnl / float64(n)
	}
	return res, nil
}

// expectedProfit 多头 size*(tp-sl)，空头 size*(sl-tp)
func expectedProfit(d model.TradeDecision) float64 {
	if d.StopLoss == nil || d.TakeProfit == nil {
		return 0
	}
	if d.Action == model.ActionEnterLong {
		return d.Size * (*d.TakeProfit - *d.StopLoss)
	}
	return d.Size * (*d.StopLoss - *d.TakeProfit)
}
