package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"tradeagent/internal/backtest"
)

const alert = `{"symbol":"ETH","price":1700,"signal":"buy","timeframe":"5m","indicators":{"RSI":25,"MACD":0.01,"EMA20":1695,"ATR":10}}`

func execute(t *testing.T, args ...string) (backtest.Result, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return backtest.Result{}, err
	}
	var res backtest.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	return res, nil
}

func TestReplay_ExplicitContext(t *testing.T) {
	dir := t.TempDir()
	alerts := filepath.Join(dir, "alerts.jsonl")
	if err := os.WriteFile(alerts, []byte(alert+"\n"+alert+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	trades := filepath.Join(dir, "trades.jsonl")

	res, err := execute(t, "--alerts", alerts, "--out", trades,
		"--ema-fast", "1690", "--ema-slow", "1680", "--vwap", "1690", "--atr-baseline", "12")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(res.Trades) != 2 || res.Entered != 2 || res.Wins != 2 || res.WinRate != 1 {
		t.Errorf("result = %+v", res)
	}

	data, err := os.ReadFile(trades)
	if err != nil {
		t.Fatalf("trade log: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("trade log lines = %d", n)
	}
}

func TestReplay_Errors(t *testing.T) {
	if _, err := execute(t); err == nil {
		t.Error("missing --alerts should fail")
	}
	if _, err := execute(t, "--alerts", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	short := filepath.Join(t.TempDir(), "klines.json")
	os.WriteFile(short, []byte(`[{"time":1,"open":1,"close":1,"high":1,"low":1,"vol":1}]`), 0o644)
	alerts := filepath.Join(t.TempDir(), "alerts.json")
	os.WriteFile(alerts, []byte("["+alert+"]"), 0o644)
	if _, err := execute(t, "--alerts", alerts, "--klines", short); err == nil {
		t.Error("too few klines should fail")
	}
}
