package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeagent/internal/dao"
	"tradeagent/internal/model/entity"
)

type stubPositions struct {
	open  []entity.Position
	pnl   float64
	since time.Time
	err   error
}

func (s *stubPositions) OpenPosition(ctx context.Context, p *entity.Position) error { return nil }

func (s *stubPositions) ListOpen(ctx context.Context, symbol string) ([]entity.Position, error) {
	return s.open, s.err
}

func (s *stubPositions) GetOpen(ctx context.Context, id uint64) (*entity.Position, error) {
	return nil, dao.ErrPositionNotFound
}

func (s *stubPositions) ClosePosition(ctx context.Context, id uint64, exitPrice, pnl float64) error {
	return nil
}

func (s *stubPositions) RealizedPnlSince(ctx context.Context, since time.Time) (float64, error) {
	s.since = since
	return s.pnl, nil
}

func TestRiskControl_Snapshot(t *testing.T) {
	stub := &stubPositions{
		open: []entity.Position{
			{Symbol: "ETH", Size: 1, EntryPrice: 1250},
			{Symbol: "ETH", Size: 0.5, EntryPrice: 1250},
			{Symbol: "SOL", Size: 10, EntryPrice: 100},
		},
		pnl: -250,
	}
	rc := NewRiskControl(stub, Settings{AccountEquity: 10000})
	rc.now = func() time.Time { return time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC) }

	state, err := rc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := state.Exposure("ETH"); got != 0.1875 {
		t.Errorf("ETH exposure = %v, want 0.1875", got)
	}
	if got := state.Exposure("SOL"); got != 0.1 {
		t.Errorf("SOL exposure = %v, want 0.1", got)
	}
	if state.DailyLossFraction != 0.025 {
		t.Errorf("daily loss = %v, want 0.025", state.DailyLossFraction)
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !stub.since.Equal(want) {
		t.Errorf("since = %v, want %v", stub.since, want)
	}
}

func TestRiskControl_ProfitIsNotLoss(t *testing.T) {
	rc := NewRiskControl(&stubPositions{pnl: 300}, Settings{AccountEquity: 10000})
	state, err := rc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if state.DailyLossFraction != 0 || len(state.OpenPositions) != 0 {
		t.Errorf("state = %+v", state)
	}
}

func TestRiskControl_DaoError(t *testing.T) {
	boom := errors.New("db down")
	rc := NewRiskControl(&stubPositions{err: boom}, Settings{AccountEquity: 10000})
	if _, err := rc.Snapshot(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped dao error, got %v", err)
	}
}
