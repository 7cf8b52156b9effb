package service

import (
	"gorm.io/datatypes"

	"tradeagent/internal/exchange"
	"tradeagent/internal/model"
	"tradeagent/internal/model/entity"
)

func alertEntity(runID int64, a model.Alert) *entity.Alert {
	return &entity.Alert{
		RunID:     runID,
		Symbol:    a.Symbol,
		Price:     a.Price,
		Signal:    string(a.Signal),
		Timeframe: a.Timeframe,
		Indicators: datatypes.JSONMap{
			"RSI":   a.Indicators.RSI,
			"MACD":  a.Indicators.MACD,
			"EMA20": a.Indicators.EMA20,
			"ATR":   a.Indicators.ATR,
		},
		AlertTime: a.Timestamp,
	}
}

func validationEntity(alertID uint64, v model.ValidationResult) *entity.ValidationResult {
	return &entity.ValidationResult{
		AlertID:    alertID,
		Valid:      v.Valid,
		Confidence: v.Confidence,
		Reasons:    datatypes.NewJSONSlice(v.Reasons),
	}
}

func decisionEntity(alertID uint64, d model.TradeDecision) *entity.Decision {
	return &entity.Decision{
		AlertID:    alertID,
		Action:     string(d.Action),
		Symbol:     d.Symbol,
		OrderType:  string(d.OrderType),
		Size:       d.Size,
		StopLoss:   d.StopLoss,
		TakeProfit: d.TakeProfit,
		Confidence: d.Confidence,
	}
}

func orderEntity(decisionID uint64, mode exchange.Mode, r model.ExecutionResult) *entity.Order {
	return &entity.Order{
		DecisionID:      decisionID,
		ExchangeOrderID: r.OrderID,
		Mode:            string(mode),
		Success:         r.Success,
		Status:          string(r.Status),
		ExecutedSize:    r.ExecutedSize,
		Error:           r.Error,
		ExecutedAt:      r.Timestamp,
	}
}

func positionEntity(orderID uint64, a model.Alert, d model.TradeDecision, r model.ExecutionResult) *entity.Position {
	return &entity.Position{
		OrderID:    orderID,
		Symbol:     d.Symbol,
		Side:       string(d.Action),
		Size:       r.ExecutedSize,
		EntryPrice: a.Price,
		StopLoss:   d.StopLoss,
		TakeProfit: d.TakeProfit,
	}
}
