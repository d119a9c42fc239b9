package amqp

import (
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{63, 30 * time.Second}, // shift overflow capped too
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"amqp closed", amqp091.ErrClosed, true},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"connection reset string", errors.New("read tcp: connection reset by peer"), true},
		{"broken pipe string", errors.New("write: broken pipe"), true},
		{"channel not open", errors.New("Exception (504) Reason: \"channel/connection is not open\""), true},
		{"plain validation error", errors.New("invalid routing key"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestLedgerSavedMessageRoundTrip(t *testing.T) {
	msg := NewLedgerSavedMessage("Gastos.xlsx", 42)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := LedgerSavedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Document != "Gastos.xlsx" || got.Transactions != 42 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
