package exchange

import (
	"context"
	"fmt"
	"time"

	"tradeagent/internal/model"
	"tradeagent/pkg/logger"
)

// ExecutionEngine 按模式把决策交给对应后端，失败只体现在结果里，不向上抛
type ExecutionEngine struct {
	backends map[Mode]Backend
	now      func() time.Time
}

func NewExecutionEngine(simulated, live Backend) *ExecutionEngine {
	return &ExecutionEngine{
		backends: map[Mode]Backend{
			ModeSimulate: simulated,
			ModeLive:     live,
		},
		now: time.Now,
	}
}

// NewDefaultExecutionEngine 模拟盘 + 未接交易所的实盘
func NewDefaultExecutionEngine() *ExecutionEngine {
	return NewExecutionEngine(NewSimulatedOrderExecutor(), NewLiveOrderExecutor(nil))
}

func (e *ExecutionEngine) Execute(ctx context.Context, d model.TradeDecision, mode Mode) (result model.ExecutionResult) {
	if !d.Action.Valid() {
		return model.FailedExecution(fmt.Errorf("unknown action %q", d.Action), e.now().UTC())
	}
	if d.Action == model.ActionIgnore {
		return model.ExecutionResult{
			Success:   true,
			Status:    model.StatusIgnored,
			Timestamp: e.now().UTC(),
		}
	}

	backend, ok := e.backends[mode]
	if !ok || backend == nil {
		return model.FailedExecution(fmt.Errorf("unsupported execution mode %q", mode), e.now().UTC())
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Execution] backend panic",
				logger.Pair("symbol", d.Symbol),
				logger.Pair("mode", string(mode)),
				logger.Pair("panic", fmt.Sprint(r)))
			result = model.FailedExecution(fmt.Errorf("backend panic: %v", r), e.now().UTC())
		}
	}()

	res, err := backend.Submit(ctx, d)
	if err != nil {
		logger.Warn("[Execution] submit failed",
			logger.Pair("symbol", d.Symbol),
			logger.Pair("mode", string(mode)),
			logger.Pair("err", err.Error()))
		return model.FailedExecution(err, e.now().UTC())
	}
	return normalize(res, e.now)
}

// normalize 保证失败结果没有订单号和成交量
func normalize(res model.ExecutionResult, now func() time.Time) model.ExecutionResult {
	if res.Timestamp.IsZero() {
		res.Timestamp = now().UTC()
	}
	if res.Success {
		return res
	}
	res.Status = model.StatusFailed
	res.OrderID = nil
	res.ExecutedSize = 0
	if res.Error == nil {
		msg := "execution failed"
		res.Error = &msg
	}
	return res
}
