package main

import (
	"errors"
	"flag"
	"log"

	api "tradeagent/cmd/agent"
	"tradeagent/conf"
	"tradeagent/internal/dao/query"
	"tradeagent/internal/middleware"
	"tradeagent/internal/risk"
	"tradeagent/pkg/db"
	"tradeagent/pkg/logger"
)

// 启动服务（监听webhook）

/*
测试

BODY='{"symbol":"ETH","price":1700,"signal":"buy","timeframe":"5m","indicators":{"RSI":25,"MACD":0.01,"EMA20":1695,"ATR":10},"context":{"ema_fast":1690,"ema_slow":1680,"vwap":1690,"atr_baseline":12}}'
SECRET="ab12cd34ef56abcdef1234567890abcdef1234567890abcdef1234567890"
SIGNATURE=$(echo -n $BODY | openssl dgst -sha256 -hmac $SECRET | sed 's/^.* //')

curl -X POST http://localhost:12180/webhook \
  -H "Content-Type: application/json" \
  -H "X-Signature: $SIGNATURE" \
  -d "$BODY"

curl http://localhost:12180/api/v1/positions?symbol=ETH

curl -X POST http://localhost:12180/api/v1/positions/1/close \
  -H "Content-Type: application/json" \
  -d '{"exit_price":1740}'
*/

func main() {
	configPath := flag.String("config", "conf/config.yaml", "config file")
	flag.Parse()

	// 加载配置文件
	err := conf.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	// 初始化数据库
	datasource, err := db.Init(appCfg.Db)
	if err != nil {
		logger.Fatalf("init database: %v", err)
	}
	if err := query.Migrate(datasource); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		// 关闭主库链接
		if m, err := datasource.DB(); err == nil {
			_ = m.Close()
		}
	})

	srvRouter, err := api.InitRouter(datasource, &appCfg)
	if err != nil {
		var cfgErr *risk.ConfigurationError
		if errors.As(err, &cfgErr) {
			logger.Fatalf("invalid risk settings: %v", err)
		}
		logger.Fatalf("init router: %v", err)
	}

	logger.Infof("trading agent listening on %s, paper trading: %v", appCfg.Listen, appCfg.Risk.PaperTrading)
	if err := srv.Run(middleware.NewMiddleware(), srvRouter); err != nil {
		logger.Fatalf("server: %v", err)
	}
	logger.Infof("server stop on port %s", appCfg.Listen)
}
