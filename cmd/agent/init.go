package api

import (
	"gorm.io/gorm"

	"tradeagent/conf"
	"tradeagent/internal/dao/query"
	"tradeagent/internal/decision"
	"tradeagent/internal/exchange"
	"tradeagent/internal/handler/position"
	"tradeagent/internal/handler/webhook"
	"tradeagent/internal/risk"
	"tradeagent/internal/router"
	"tradeagent/internal/service"
)

// InitRouter 组装流水线，风控参数非法时返回 *risk.ConfigurationError
func InitRouter(db *gorm.DB, cfg *conf.Config) (Router, error) {
	settings := risk.SettingsFromConfig(cfg.Risk)
	engine, err := decision.NewEngine(settings)
	if err != nil {
		return nil, err
	}

	records := query.NewPipelineDao(db)
	positions := query.NewPositionDao(db)

	pipeline, err := service.NewPipelineService(service.PipelineDeps{
		Engine:    engine,
		Executor:  exchange.NewDefaultExecutionEngine(),
		Risk:      risk.NewRiskControl(positions, settings),
		Records:   records,
		Positions: positions,
		NodeID:    1,
	})
	if err != nil {
		return nil, err
	}

	wh := webhook.NewHandler(pipeline)
	ph := position.NewHandler(service.NewPositionService(positions))

	return router.NewApiRouter(wh, ph, cfg.Webhook.Secret), nil
}
