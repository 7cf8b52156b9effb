package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tradeagent/internal/dao"
	"tradeagent/internal/model/entity"
)

type PositionDaoImpl struct {
	db *gorm.DB
}

func NewPositionDao(db *gorm.DB) dao.PositionDao {
	return &PositionDaoImpl{db: db}
}

func (d *PositionDaoImpl) OpenPosition(ctx context.Context, p *entity.Position) error {
	if err := d.db.WithContext(ctx).Omit("Order").Create(p).Error; err != nil {
		return fmt.Errorf("failed to open position for order %d: %w", p.OrderID, err)
	}
	return nil
}

func (d *PositionDaoImpl) ListOpen(ctx context.Context, symbol string) ([]entity.Position, error) {
	var list []entity.Position
	q := d.db.WithContext(ctx)
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list open positions: %w", err)
	}
	return list, nil
}

func (d *PositionDaoImpl) GetOpen(ctx context.Context, id uint64) (*entity.Position, error) {
	var p entity.Position
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dao.ErrPositionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position %d: %w", id, err)
	}
	return &p, nil
}

// ClosePosition 先写平仓价和盈亏，再软删除（is_closed=1, closed_at=now）
func (d *PositionDaoImpl) ClosePosition(ctx context.Context, id uint64, exitPrice, pnl float64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Position{}).Where("id = ?", id).Updates(map[string]interface{}{
			"exit_price":   exitPrice,
			"realized_pnl": pnl,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update position %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return dao.ErrPositionNotFound
		}
		if err := tx.Delete(&entity.Position{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to close position %d: %w", id, err)
		}
		return nil
	})
}

func (d *PositionDaoImpl) RealizedPnlSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := d.db.WithContext(ctx).Unscoped().Model(&entity.Position{}).
		Where("is_closed = ? AND closed_at >= ?", 1, since.UTC()).
		Select("COALESCE(SUM(realized_pnl), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum realized pnl: %w", err)
	}
	return total, nil
}
