package validator

import (
	"errors"
	"strings"
	"testing"
)

type payload struct {
	Symbol string  `json:"symbol" binding:"required,oneof=ETH BTC-USD SOL"`
	Price  float64 `json:"price" binding:"gt=0"`
}

func TestNew_UsesJSONNames(t *testing.T) {
	v := New("en")
	err := v.Struct(payload{Symbol: "DOGE", Price: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := Translate(err)
	if !strings.Contains(msg, "symbol must be one of [ETH BTC-USD SOL]") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "price must be greater than 0") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestNew_Valid(t *testing.T) {
	v := New("en")
	if err := v.Struct(payload{Symbol: "ETH", Price: 1700}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTranslate_PlainError(t *testing.T) {
	if got := Translate(errors.New("bad json")); got != "bad json" {
		t.Errorf("got %q", got)
	}
	if Translate(nil) != "" {
		t.Error("nil error should translate to empty string")
	}
}
