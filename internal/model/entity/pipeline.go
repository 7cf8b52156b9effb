package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Alert 收到的告警，每次流水线运行一条
type Alert struct {
	ID         uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID      int64             `gorm:"column:run_id;not null;uniqueIndex" json:"run_id"` // snowflake
	Symbol     string            `gorm:"type:varchar(20);not null;index:idx_alert_symbol" json:"symbol"`
	Price      float64           `gorm:"type:decimal(20,8);not null" json:"price"`
	Signal     string            `gorm:"type:varchar(10);not null" json:"signal"`
	Timeframe  string            `gorm:"type:varchar(10);not null" json:"timeframe"`
	Indicators datatypes.JSONMap `gorm:"column:indicators;type:json" json:"indicators"`
	AlertTime  *time.Time        `gorm:"column:alert_time" json:"alert_time"` // 告警自带的时间，可空
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Alert) TableName() string {
	return "alerts"
}

type ValidationResult struct {
	ID         uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	AlertID    uint64                      `gorm:"column:alert_id;not null;index" json:"alert_id"`
	Valid      bool                        `gorm:"not null" json:"valid"`
	Confidence int                         `gorm:"not null" json:"confidence"`
	Reasons    datatypes.JSONSlice[string] `gorm:"column:reasons;type:json" json:"reasons"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"created_at"`

	Alert *Alert `gorm:"foreignKey:AlertID;references:ID" json:"-"`
}

func (ValidationResult) TableName() string {
	return "validation_results"
}

type Decision struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AlertID    uint64    `gorm:"column:alert_id;not null;index" json:"alert_id"`
	Action     string    `gorm:"type:varchar(20);not null" json:"action"` // ENTER_LONG/ENTER_SHORT/IGNORE
	Symbol     string    `gorm:"type:varchar(20);not null" json:"symbol"`
	OrderType  string    `gorm:"type:varchar(10);not null" json:"order_type"`
	Size       float64   `gorm:"type:decimal(20,8);not null" json:"size"`
	StopLoss   *float64  `gorm:"column:stop_loss;type:decimal(20,8)" json:"stop_loss"`
	TakeProfit *float64  `gorm:"column:take_profit;type:decimal(20,8)" json:"take_profit"`
	Confidence int       `gorm:"not null" json:"confidence"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Alert *Alert `gorm:"foreignKey:AlertID;references:ID" json:"-"`
}

func (Decision) TableName() string {
	return "decisions"
}

// Order 执行结果，IGNORE 也会记录一条
type Order struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DecisionID      uint64    `gorm:"column:decision_id;not null;index" json:"decision_id"`
	ExchangeOrderID *string   `gorm:"column:exchange_order_id;type:varchar(64)" json:"exchange_order_id"`
	Mode            string    `gorm:"type:varchar(10);not null" json:"mode"` // simulate/live
	Success         bool      `gorm:"not null" json:"success"`
	Status          string    `gorm:"type:varchar(10);not null" json:"status"`
	ExecutedSize    float64   `gorm:"column:executed_size;type:decimal(20,8);not null" json:"executed_size"`
	Error           *string   `gorm:"type:text" json:"error"`
	ExecutedAt      time.Time `gorm:"column:executed_at;not null" json:"executed_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Decision *Decision `gorm:"foreignKey:DecisionID;references:ID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
