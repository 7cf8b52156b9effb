package backtest

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"tradeagent/conf"
	"tradeagent/internal/model"
	"tradeagent/internal/risk"
)

func ptr(v float64) *float64 { return &v }

func fixedContext() model.MarketContext {
	return model.MarketContext{EmaFast: 1690, EmaSlow: 1680, Vwap: ptr(1690), AtrBaseline: 12}
}

func settings() risk.Settings {
	return risk.SettingsFromConfig(conf.Default().Risk)
}

func strong() model.Alert {
	return model.Alert{
		Symbol: "ETH", Price: 1700, Signal: model.Buy, Timeframe: "5m",
		Indicators: model.Indicators{RSI: 25, MACD: 0.01, EMA20: 1695, ATR: 10},
	}
}

func weak() model.Alert {
	a := strong()
	a.Indicators.RSI = 50
	a.Indicators.MACD = 0
	a.Indicators.EMA20 = 1600
	return a
}

type memRecorder struct{ rows []any }

func (m *memRecorder) Record(v any) error {
	m.rows = append(m.rows, v)
	return nil
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBacktester_Run(t *testing.T) {
	rec := &memRecorder{}
	bt, err := NewBacktester(fixedContext(), settings(), rec)
	if err != nil {
		t.Fatalf("NewBacktester: %v", err)
	}
	res, err := bt.Run([]model.Alert{strong(), weak(), strong()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 每笔 1.1764 * (1740-1680) * 0.8；风险状态不累计，所以两笔都进场
	perTrade := 1.1764 * 60 * 0.8
	if len(res.Trades) != 3 || res.Entered != 2 || res.Wins != 2 {
		t.Fatalf("result = %+v", res)
	}
	if !near(res.NetPnl, 2*perTrade) {
		t.Errorf("net = %v, want %v", res.NetPnl, 2*perTrade)
	}
	if !near(res.WinRate, 2.0/3) {
		t.Errorf("win rate = %v", res.WinRate)
	}
	if !near(res.Expectancy, 2*perTrade/3) {
		t.Errorf("expectancy = %v", res.Expectancy)
	}
	if res.Trades[1].Action != model.ActionIgnore {
		t.Errorf("weak alert should be ignored: %+v", res.Trades[1])
	}
	if len(rec.rows) != 3 {
		t.Errorf("recorded %d rows, want 3", len(rec.rows))
	}
}

func TestBacktester_ShortProfit(t *testing.T) {
	bt, err := NewBacktester(fixedContext(), settings(), nil)
	if err != nil {
		t.Fatalf("NewBacktester: %v", err)
	}
	a := strong()
	a.Signal = model.Sell
	a.Indicators.RSI = 75
	a.Indicators.MACD = -1
	res, err := bt.Run([]model.Alert{a})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Trades[0].Action != model.ActionEnterShort {
		t.Fatalf("decision = %+v", res.Trades[0])
	}
	// sl - tp = 1720 - 1660
	if want := 1.1764 * 60 * 0.8; !near(res.NetPnl, want) {
		t.Errorf("net = %v, want %v", res.NetPnl, want)
	}
}

func TestBacktester_Empty(t *testing.T) {
	bt, _ := NewBacktester(fixedContext(), settings(), nil)
	res, err := bt.Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.WinRate != 0 || res.Expectancy != 0 || res.NetPnl != 0 {
		t.Errorf("empty replay = %+v", res)
	}
}

func TestBacktester_BadAlert(t *testing.T) {
	bt, _ := NewBacktester(fixedContext(), settings(), nil)
	a := strong()
	a.Price = math.NaN()
	_, err := bt.Run([]model.Alert{strong(), a})
	var inputErr *model.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestNewBacktester_InvalidSettings(t *testing.T) {
	s := settings()
	s.AccountEquity = 0
	var cfgErr *risk.ConfigurationError
	if _, err := NewBacktester(fixedContext(), s, nil); !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestLoadAlerts(t *testing.T) {
	dir := t.TempDir()
	arr := filepath.Join(dir, "alerts.json")
	lines := filepath.Join(dir, "alerts.jsonl")
	body := `{"symbol":"ETH","price":1700,"signal":"buy","timeframe":"5m","indicators":{"RSI":25,"MACD":0.01,"EMA20":1695,"ATR":10}}`
	if err := os.WriteFile(arr, []byte("["+body+","+body+"]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lines, []byte(body+"\n\n"+body+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{arr, lines} {
		alerts, err := LoadAlerts(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(alerts) != 2 || alerts[0].Indicators.EMA20 != 1695 || alerts[1].Signal != model.Buy {
			t.Errorf("%s: alerts = %+v", p, alerts)
		}
	}

	bad := filepath.Join(dir, "bad.jsonl")
	os.WriteFile(bad, []byte("{not json}\n"), 0o644)
	if _, err := LoadAlerts(bad); err == nil {
		t.Error("expected parse error")
	}
}
