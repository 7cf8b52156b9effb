package query

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tradeagent/internal/dao"
	"tradeagent/internal/model/entity"
)

type PipelineDaoImpl struct {
	db *gorm.DB
}

func NewPipelineDao(db *gorm.DB) dao.PipelineDao {
	return &PipelineDaoImpl{db: db}
}

func (d *PipelineDaoImpl) SaveAlert(ctx context.Context, alert *entity.Alert) error {
	if err := d.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to save alert run %d: %w", alert.RunID, err)
	}
	return nil
}

func (d *PipelineDaoImpl) SaveValidation(ctx context.Context, v *entity.ValidationResult) error {
	if v.AlertID == 0 {
		return errors.New("validation result requires alert id")
	}
	if err := d.db.WithContext(ctx).Omit("Alert").Create(v).Error; err != nil {
		return fmt.Errorf("failed to save validation for alert %d: %w", v.AlertID, err)
	}
	return nil
}

func (d *PipelineDaoImpl) SaveDecision(ctx context.Context, dec *entity.Decision) error {
	if dec.AlertID == 0 {
		return errors.New("decision requires alert id")
	}
	if err := d.db.WithContext(ctx).Omit("Alert").Create(dec).Error; err != nil {
		return fmt.Errorf("failed to save decision for alert %d: %w", dec.AlertID, err)
	}
	return nil
}

func (d *PipelineDaoImpl) SaveOrder(ctx context.Context, o *entity.Order) error {
	if o.DecisionID == 0 {
		return errors.New("order requires decision id")
	}
	if err := d.db.WithContext(ctx).Omit("Decision").Create(o).Error; err != nil {
		return fmt.Errorf("failed to save order for decision %d: %w", o.DecisionID, err)
	}
	return nil
}

// GetRun 后续阶段可能不存在（例如输入校验失败），对应字段为 nil
func (d *PipelineDaoImpl) GetRun(ctx context.Context, runID int64) (*dao.RunRecord, error) {
	db := d.db.WithContext(ctx)
	rec := &dao.RunRecord{}
	if err := db.Where("run_id = ?", runID).First(&rec.Alert).Error; err != nil {
		return nil, fmt.Errorf("failed to get alert for run %d: %w", runID, err)
	}

	var v entity.ValidationResult
	if err := db.Where("alert_id = ?", rec.Alert.ID).First(&v).Error; err == nil {
		rec.Validation = &v
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get validation for run %d: %w", runID, err)
	}

	var dec entity.Decision
	if err := db.Where("alert_id = ?", rec.Alert.ID).First(&dec).Error; err == nil {
		rec.Decision = &dec
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get decision for run %d: %w", runID, err)
	}

	if rec.Decision != nil {
		var o entity.Order
		if err := db.Where("decision_id = ?", rec.Decision.ID).First(&o).Error; err == nil {
			rec.Order = &o
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get order for run %d: %w", runID, err)
		}
	}
	return rec, nil
}
