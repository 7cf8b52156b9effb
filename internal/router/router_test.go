package router

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tradeagent/conf"
	"tradeagent/internal/dao/query"
	"tradeagent/internal/decision"
	"tradeagent/internal/exchange"
	"tradeagent/internal/handler/position"
	"tradeagent/internal/handler/webhook"
	"tradeagent/internal/risk"
	"tradeagent/internal/service"
	"tradeagent/pkg/db"
	"tradeagent/pkg/validator"
)

const secret = "ab12cd34ef56"

func init() {
	gin.SetMode(gin.TestMode)
	validator.LazyInitGinValidator("en")
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gdb, err := db.Open(conf.Db{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := query.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	settings := risk.SettingsFromConfig(conf.Default().Risk)
	engine, err := decision.NewEngine(settings)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	positions := query.NewPositionDao(gdb)
	pipeline, err := service.NewPipelineService(service.PipelineDeps{
		Engine:    engine,
		Executor:  exchange.NewDefaultExecutionEngine(),
		Risk:      risk.NewRiskControl(positions, settings),
		Records:   query.NewPipelineDao(gdb),
		Positions: positions,
		NodeID:    1,
	})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	g := gin.New()
	NewApiRouter(
		webhook.NewHandler(pipeline),
		position.NewHandler(service.NewPositionService(positions)),
		secret,
	).Load(g)
	return g
}

func sign(body string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

func get(g *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	g := newEngine(t)
	if rec := get(g, "/health"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health: %d %s", rec.Code, rec.Body.String())
	}
	if rec := get(g, "/ping"); rec.Code != http.StatusOK {
		t.Errorf("ping: %d", rec.Code)
	}
	if rec := get(g, "/metrics"); rec.Code != http.StatusOK {
		t.Errorf("metrics: %d", rec.Code)
	}
}

func TestWebhookToPosition(t *testing.T) {
	g := newEngine(t)
	body := `{"symbol":"ETH","price":1700,"signal":"buy","timeframe":"5m",` +
		`"indicators":{"RSI":25,"MACD":0.01,"EMA20":1695,"ATR":10},` +
		`"context":{"ema_fast":1690,"ema_slow":1680,"vwap":1690,"atr_baseline":12}}`

	// 未签名
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unsigned webhook: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", sign(body))
	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signed webhook: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"filled"`) || rec.Header().Get("X-Run-Id") == "" {
		t.Errorf("webhook response: %s", rec.Body.String())
	}

	rec = get(g, "/api/v1/positions?symbol=ETH")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"symbol":"ETH"`) {
		t.Errorf("positions: %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/positions/1/close", strings.NewReader(`{"exit_price":1710}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("close: %d %s", rec.Code, rec.Body.String())
	}

	if rec := get(g, "/api/v1/positions"); strings.Contains(rec.Body.String(), `"symbol":"ETH"`) {
		t.Errorf("closed position still listed: %s", rec.Body.String())
	}
}
