package risk

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"

	"tradeagent/conf"
)

// Settings 风控参数快照，构造引擎时传入，之后只读
type Settings struct {
	MaxRiskPerTrade   float64
	MaxDailyLoss      float64
	MaxSymbolExposure float64
	AccountEquity     float64
	PaperTrading      bool
}

func SettingsFromConfig(c conf.RiskConfig) Settings {
	return Settings{
		MaxRiskPerTrade:   c.MaxRiskPerTrade,
		MaxDailyLoss:      c.MaxDailyLoss,
		MaxSymbolExposure: c.MaxSymbolExposure,
		AccountEquity:     c.AccountEquity,
		PaperTrading:      c.PaperTrading,
	}
}

// ConfigurationError 启动时发现的非法风控参数
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	msgs := make([]string, 0)
	for _, err := range multierr.Errors(e.Err) {
		msgs = append(msgs, err.Error())
	}
	return "invalid risk settings: " + strings.Join(msgs, "; ")
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Validate 比例参数必须是非负有限值，权益必须为正
func (s Settings) Validate() error {
	var err error
	fractions := []struct {
		name  string
		value float64
	}{
		{"max_risk_per_trade", s.MaxRiskPerTrade},
		{"max_daily_loss", s.MaxDailyLoss},
		{"max_symbol_exposure", s.MaxSymbolExposure},
	}
	for _, f := range fractions {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			err = multierr.Append(err, fmt.Errorf("%s must be finite, got %v", f.name, f.value))
		} else if f.value < 0 {
			err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %v", f.name, f.value))
		}
	}
	if math.IsNaN(s.AccountEquity) || math.IsInf(s.AccountEquity, 0) || s.AccountEquity <= 0 {
		err = multierr.Append(err, fmt.Errorf("account_equity must be positive, got %v", s.AccountEquity))
	}
	if err != nil {
		return &ConfigurationError{Err: err}
	}
	return nil
}
