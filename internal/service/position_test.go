package service

import (
	"context"
	"errors"
	"testing"

	"tradeagent/internal/dao"
	"tradeagent/internal/model"
	"tradeagent/internal/model/entity"
)

func TestRealizedPnl(t *testing.T) {
	long := entity.Position{Side: string(model.ActionEnterLong), Size: 1.5, EntryPrice: 100}
	short := entity.Position{Side: string(model.ActionEnterShort), Size: 2, EntryPrice: 100}
	if got := RealizedPnl(long, 110); got != 15 {
		t.Errorf("long pnl = %v, want 15", got)
	}
	if got := RealizedPnl(long, 90); got != -15 {
		t.Errorf("long loss = %v, want -15", got)
	}
	if got := RealizedPnl(short, 90); got != 20 {
		t.Errorf("short pnl = %v, want 20", got)
	}
	if got := RealizedPnl(short, 100.1); got != -0.2 {
		t.Errorf("short loss = %v, want -0.2", got)
	}
}

func TestPositionService_Close(t *testing.T) {
	fx := newFixture(t, paperSettings())
	ctx := context.Background()
	if _, err := fx.pipeline.Run(ctx, ethAlert(), ethContext()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	open, err := fx.positions.List(ctx, "")
	if err != nil || len(open) != 1 {
		t.Fatalf("List: %v %+v", err, open)
	}

	closed, err := fx.positions.Close(ctx, open[0].ID, 1710)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if closed.RealizedPnl != 11.764 || closed.ClosedAt == nil || *closed.ExitPrice != 1710 {
		t.Errorf("closed = %+v", closed)
	}

	if _, err := fx.positions.Close(ctx, open[0].ID, 1710); !errors.Is(err, dao.ErrPositionNotFound) {
		t.Errorf("second close: %v", err)
	}
	if _, err := fx.positions.Close(ctx, 999, 1710); !errors.Is(err, dao.ErrPositionNotFound) {
		t.Errorf("unknown id: %v", err)
	}
	var inputErr *model.InputError
	if _, err := fx.positions.Close(ctx, open[0].ID, 0); !errors.As(err, &inputErr) {
		t.Errorf("zero exit price: %v", err)
	}
	if left, _ := fx.positions.List(ctx, ""); len(left) != 0 {
		t.Errorf("open after close = %+v", left)
	}
}
