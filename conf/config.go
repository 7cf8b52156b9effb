package conf

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// 配置加载（数据库、风控参数、日志等）

type WebhookConfig struct {
	Secret string `yaml:"secret"` // 为空时不校验 X-Signature
}

type Db struct {
	Driver   string `yaml:"driver"` // sqlite / mysql
	DSN      string `yaml:"dsn"`    // sqlite 文件路径，或完整的 mysql dsn
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RiskConfig 风控参数，启动时读取一次，之后不再修改
type RiskConfig struct {
	PaperTrading      bool    `yaml:"paper-trading"`       // 模拟盘
	MaxRiskPerTrade   float64 `yaml:"max-risk-per-trade"`  // 单笔最大风险（占权益比例）
	MaxDailyLoss      float64 `yaml:"max-daily-loss"`      // 单日最大亏损（占权益比例）
	MaxSymbolExposure float64 `yaml:"max-symbol-exposure"` // 单币种最大敞口（占权益比例）
	AccountEquity     float64 `yaml:"account-equity"`      // 用于计算仓位的账户权益
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Environment  string `yaml:"environment"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook WebhookConfig `yaml:"webhook"`
	Db      `yaml:"database"`
	Risk    RiskConfig `yaml:"risk"`
	Log     LogConfig  `yaml:"log"`
}

var AppConfig = Default()

// Default 默认配置，sqlite + 模拟盘
func Default() Config {
	return Config{
		AppName:      "tradeagent",
		Environment:  "development",
		Listen:       ":12180",
		Mode:         "release",
		Language:     "en",
		MaxPingCount: 10,
		Db: Db{
			Driver: "sqlite",
			DSN:    "data/trading_agent.db",
		},
		Risk: RiskConfig{
			PaperTrading:      true,
			MaxRiskPerTrade:   0.01,
			MaxDailyLoss:      0.05,
			MaxSymbolExposure: 0.2,
			AccountEquity:     10000,
		},
		Log: LogConfig{
			Level:      "info",
			FileName:   "logs/tradeagent.log",
			TimeFormat: "2006-01-02 15:04:05.000",
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     30,
			Console:    true,
		},
	}
}

func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load 读取 yaml，未配置的字段保留默认值，最后用 .env / 环境变量覆盖
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("Read config file error %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("Unmarshal config yaml error: %w", err)
		}
	}
	// .env 不存在时忽略
	_ = godotenv.Load()
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv 环境变量优先级高于配置文件
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("DB_DRIVER", &cfg.Driver)
	str("DB_DSN", &cfg.DSN)
	str("DB_USER", &cfg.Username)
	str("DB_PASSWORD", &cfg.Db.Password)
	str("DB_HOST", &cfg.Host)
	str("DB_PORT", &cfg.Port)
	str("DB_NAME", &cfg.DbName)
	str("WEBHOOK_SECRET", &cfg.Webhook.Secret)
	str("LISTEN", &cfg.Listen)
	str("ENVIRONMENT", &cfg.Environment)

	if v, ok := lookup("PAPER_TRADING"); ok && v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("invalid PAPER_TRADING %q: %w", v, err)
		}
		cfg.Risk.PaperTrading = b
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MAX_RISK_PER_TRADE", &cfg.Risk.MaxRiskPerTrade},
		{"MAX_DAILY_LOSS", &cfg.Risk.MaxDailyLoss},
		{"MAX_SYMBOL_EXPOSURE", &cfg.Risk.MaxSymbolExposure},
		{"ACCOUNT_EQUITY", &cfg.Risk.AccountEquity},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", f.key, v, err)
		}
		*f.dst = n
	}
	return nil
}
