package models

import (
	"encoding/json"
	"testing"
)

func TestNewMoneyFromStringRounds(t *testing.T) {
	money, err := NewMoneyFromString("19.999")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if money.String() != "20.00" {
		t.Fatalf("expected 20.00, got %s", money.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	money, err := NewMoneyFromString("7.5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	data, err := json.Marshal(money)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"7.50"` {
		t.Fatalf("expected quoted two-decimal string, got %s", data)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"12.345"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.String() != "12.35" {
		t.Fatalf("expected 12.35, got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`3.1`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.String() != "3.10" {
		t.Fatalf("expected 3.10, got %s", fromNumber.String())
	}
}
