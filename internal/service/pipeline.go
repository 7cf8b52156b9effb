package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"tradeagent/internal/dao"
	"tradeagent/internal/decision"
	"tradeagent/internal/exchange"
	"tradeagent/internal/metrics"
	"tradeagent/internal/model"
	"tradeagent/internal/signal"
	"tradeagent/pkg/logger"
)

// RiskReader 提供当前的风险状态
type RiskReader interface {
	Snapshot(ctx context.Context) (model.RiskState, error)
}

// PipelineResult 一次运行各阶段的输出
type PipelineResult struct {
	RunID      int64                  `json:"run_id"`
	Validation model.ValidationResult `json:"validation"`
	Decision   model.TradeDecision    `json:"decision"`
	Execution  model.ExecutionResult  `json:"execution"`
}

// PipelineService 校验 -> 决策 -> 执行，每个阶段落库一次
type PipelineService struct {
	validator *signal.Validator
	engine    *decision.Engine
	executor  *exchange.ExecutionEngine
	risk      RiskReader
	records   dao.PipelineDao
	positions dao.PositionDao
	mode      exchange.Mode
	node      *snowflake.Node

	// 读风险状态到记录仓位之间串行，避免两个告警同时占用同一份敞口
	mu sync.Mutex
}

type PipelineDeps struct {
	Engine    *decision.Engine
	Executor  *exchange.ExecutionEngine
	Risk      RiskReader
	Records   dao.PipelineDao
	Positions dao.PositionDao
	NodeID    int64
}

func NewPipelineService(deps PipelineDeps) (*PipelineService, error) {
	if deps.Engine == nil || deps.Executor == nil || deps.Risk == nil || deps.Records == nil || deps.Positions == nil {
		return nil, errors.New("pipeline: missing dependency")
	}
	node, err := snowflake.NewNode(deps.NodeID)
	if err != nil {
		return nil, fmt.Errorf("pipeline: snowflake node: %w", err)
	}
	return &PipelineService{
		validator: signal.NewValidator(),
		engine:    deps.Engine,
		executor:  deps.Executor,
		risk:      deps.Risk,
		records:   deps.Records,
		positions: deps.Positions,
		mode:      exchange.ModeFromPaperTrading(deps.Engine.Settings().PaperTrading),
		node:      node,
	}, nil
}

func (s *PipelineService) Mode() exchange.Mode {
	return s.mode
}

// Run 输入非法时返回 *model.InputError，不落库；存储失败返回包装后的错误
func (s *PipelineService) Run(ctx context.Context, alert model.Alert, mctx model.MarketContext) (*PipelineResult, error) {
	start := time.Now()
	defer func() {
		metrics.PipelineSeconds.Observe(time.Since(start).Seconds())
	}()

	if err := checkInput(alert, mctx); err != nil {
		return nil, err
	}
	metrics.AlertsTotal.WithLabelValues(alert.Symbol, string(alert.Signal)).Inc()

	runID := s.node.Generate().Int64()
	alertRow := alertEntity(runID, alert)
	if err := s.records.SaveAlert(ctx, alertRow); err != nil {
		return nil, err
	}

	validation, err := s.validator.Evaluate(alert, mctx)
	if err != nil {
		return nil, err
	}
	metrics.ValidationsTotal.WithLabelValues(strconv.FormatBool(validation.Valid)).Inc()
	if err := s.records.SaveValidation(ctx, validationEntity(alertRow.ID, validation)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.risk.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	d := s.engine.Decide(alert, validation, state)
	metrics.DecisionsTotal.WithLabelValues(d.Symbol, string(d.Action)).Inc()
	decisionRow := decisionEntity(alertRow.ID, d)
	if err := s.records.SaveDecision(ctx, decisionRow); err != nil {
		return nil, err
	}

	execution := s.executor.Execute(ctx, d, s.mode)
	metrics.ExecutionsTotal.WithLabelValues(string(s.mode), string(execution.Status)).Inc()
	orderRow := orderEntity(decisionRow.ID, s.mode, execution)
	if err := s.records.SaveOrder(ctx, orderRow); err != nil {
		return nil, err
	}

	if opensPosition(d, execution) {
		if err := s.positions.OpenPosition(ctx, positionEntity(orderRow.ID, alert, d, execution)); err != nil {
			return nil, err
		}
	}

	logger.Info("[Pipeline] run finished",
		logger.Pair("run_id", runID),
		logger.Pair("symbol", alert.Symbol),
		logger.Pair("confidence", validation.Confidence),
		logger.Pair("action", string(d.Action)),
		logger.Pair("status", string(execution.Status)))

	return &PipelineResult{
		RunID:      runID,
		Validation: validation,
		Decision:   d,
		Execution:  execution,
	}, nil
}

func checkInput(alert model.Alert, mctx model.MarketContext) error {
	err := alert.Check()
	if err == nil {
		err = mctx.Check()
	}
	var inputErr *model.InputError
	if errors.As(err, &inputErr) {
		metrics.RejectedTotal.WithLabelValues(inputErr.Field).Inc()
	}
	return err
}

// opensPosition 只有实际成交的进场才记仓位
func opensPosition(d model.TradeDecision, res model.ExecutionResult) bool {
	return d.Action != model.ActionIgnore && res.Success && res.Status == model.StatusFilled && res.ExecutedSize > 0
}
