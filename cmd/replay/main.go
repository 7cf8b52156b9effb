package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradeagent/conf"
	"tradeagent/internal/backtest"
	"tradeagent/internal/market"
	"tradeagent/internal/model"
	"tradeagent/internal/risk"
	"tradeagent/pkg/logger"
	"tradeagent/pkg/recorder"
)

// 回放历史告警
//
//	replay --alerts alerts.jsonl --klines eth-5m.json --out logs/replay.jsonl
//	replay --alerts alerts.json --ema-fast 1690 --ema-slow 1680 --vwap 1690 --atr-baseline 12

type options struct {
	config      string
	alerts      string
	klines      string
	out         string
	emaFast     float64
	emaSlow     float64
	vwap        float64
	atrBaseline float64
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "replay",
		Short:        "Replay alerts through validation and decision with a fixed market context",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "config file, defaults are used when empty")
	f.StringVar(&opts.alerts, "alerts", "", "alerts file (JSON array or JSONL)")
	f.StringVar(&opts.klines, "klines", "", "candles used to build the market context")
	f.StringVar(&opts.out, "out", "", "append every replayed trade to this JSONL file")
	f.Float64Var(&opts.emaFast, "ema-fast", 0, "ema_fast when --klines is not set")
	f.Float64Var(&opts.emaSlow, "ema-slow", 0, "ema_slow when --klines is not set")
	f.Float64Var(&opts.vwap, "vwap", 0, "vwap when --klines is not set, 0 means absent")
	f.Float64Var(&opts.atrBaseline, "atr-baseline", 0, "atr_baseline when --klines is not set")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log decisions to stderr")
	_ = cmd.MarkFlagRequired("alerts")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := conf.Load(opts.config)
	if err != nil {
		return err
	}
	// 结果写 stdout，日志只在 --verbose 时写 stderr
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger.ReplaceLogger(l)
	} else {
		logger.ReplaceLogger(zap.NewNop())
	}
	defer logger.Sync()

	mctx, err := marketContext(opts)
	if err != nil {
		return err
	}
	alerts, err := backtest.LoadAlerts(opts.alerts)
	if err != nil {
		return fmt.Errorf("load alerts: %w", err)
	}

	var rec backtest.Recorder
	if opts.out != "" {
		rec = recorder.NewJSONFileRecorder(opts.out)
	}
	bt, err := backtest.NewBacktester(mctx, risk.SettingsFromConfig(cfg.Risk), rec)
	if err != nil {
		return err
	}
	res, err := bt.Run(alerts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func marketContext(opts options) (model.MarketContext, error) {
	if opts.klines != "" {
		klines, err := backtest.LoadKlines(opts.klines)
		if err != nil {
			return model.MarketContext{}, fmt.Errorf("load klines: %w", err)
		}
		return market.BuildContext(klines)
	}
	mctx := model.MarketContext{EmaFast: opts.emaFast, EmaSlow: opts.emaSlow, AtrBaseline: opts.atrBaseline}
	if opts.vwap > 0 {
		v := opts.vwap
		mctx.Vwap = &v
	}
	return mctx, nil
}
