package dao

import (
	"context"

	"tradeagent/internal/model/entity"
)

// PipelineDao 流水线各阶段的落库，每次运行每个阶段只写一次
type PipelineDao interface {
	SaveAlert(ctx context.Context, alert *entity.Alert) error
	SaveValidation(ctx context.Context, v *entity.ValidationResult) error
	SaveDecision(ctx context.Context, d *entity.Decision) error
	SaveOrder(ctx context.Context, o *entity.Order) error
	// 按运行编号取回整条链路，供排查使用
	GetRun(ctx context.Context, runID int64) (*RunRecord, error)
}

type RunRecord struct {
	Alert      entity.Alert
	Validation *entity.ValidationResult
	Decision   *entity.Decision
	Order      *entity.Order
}
