package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
listen: ":9000"
database:
  driver: mysql
  host: 127.0.0.1:3306
  dbname: tradeagent
risk:
  max-daily-loss: 0.03
  account-equity: 25000
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if cfg.Driver != "mysql" || cfg.DbName != "tradeagent" {
		t.Errorf("database = %+v", cfg.Db)
	}
	if cfg.Risk.MaxDailyLoss != 0.03 || cfg.Risk.AccountEquity != 25000 {
		t.Errorf("risk = %+v", cfg.Risk)
	}
	// 未配置的字段保持默认值
	if cfg.Risk.MaxRiskPerTrade != 0.01 || cfg.Risk.MaxSymbolExposure != 0.2 || !cfg.Risk.PaperTrading {
		t.Errorf("defaults lost: %+v", cfg.Risk)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PAPER_TRADING":       "false",
		"MAX_RISK_PER_TRADE":  "0.02",
		"MAX_SYMBOL_EXPOSURE": "0.5",
		"DB_DSN":              "file::memory:",
		"WEBHOOK_SECRET":      "s3cret",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Risk.PaperTrading {
		t.Error("paper trading should be disabled")
	}
	if cfg.Risk.MaxRiskPerTrade != 0.02 || cfg.Risk.MaxSymbolExposure != 0.5 {
		t.Errorf("risk = %+v", cfg.Risk)
	}
	if cfg.DSN != "file::memory:" || cfg.Webhook.Secret != "s3cret" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "ACCOUNT_EQUITY" {
			return "lots", true
		}
		return "", false
	}
	cfg := Default()
	if err := ApplyEnv(&cfg, lookup); err == nil {
		t.Fatal("expected error for non-numeric ACCOUNT_EQUITY")
	}
}
