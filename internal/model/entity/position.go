package entity

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Position 模拟盘成交后开的仓位；平仓走软删除，is_closed 置 1 并写入 closed_at
type Position struct {
	ID          uint64                `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint64                `gorm:"column:order_id;not null;uniqueIndex" json:"order_id"`
	Symbol      string                `gorm:"type:varchar(20);not null;index:idx_position_symbol" json:"symbol"`
	Side        string                `gorm:"type:varchar(20);not null" json:"side"` // ENTER_LONG/ENTER_SHORT
	Size        float64               `gorm:"type:decimal(20,8);not null" json:"size"`
	EntryPrice  float64               `gorm:"column:entry_price;type:decimal(20,8);not null" json:"entry_price"`
	StopLoss    *float64              `gorm:"column:stop_loss;type:decimal(20,8)" json:"stop_loss"`
	TakeProfit  *float64              `gorm:"column:take_profit;type:decimal(20,8)" json:"take_profit"`
	ExitPrice   *float64              `gorm:"column:exit_price;type:decimal(20,8)" json:"exit_price"`
	RealizedPnl float64               `gorm:"column:realized_pnl;type:decimal(20,8);not null;default:0" json:"realized_pnl"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`
	ClosedAt    *time.Time            `gorm:"column:closed_at;index" json:"closed_at"`
	IsClosed    soft_delete.DeletedAt `gorm:"column:is_closed;softDelete:flag,DeletedAtField:ClosedAt" json:"-"`

	Order *Order `gorm:"foreignKey:OrderID;references:ID" json:"-"`
}

func (Position) TableName() string {
	return "positions"
}

// Notional 名义价值
func (p Position) Notional() float64 {
	return p.Size * p.EntryPrice
}
