package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSavedMessage announces that the ledger document was overwritten.
// Consumers re-fetch the document themselves; the message carries only
// enough to log and to skip stale notifications.
type LedgerSavedMessage struct {
	Document     string    `json:"document"`
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewLedgerSavedMessage creates a save notification for the named document.
func NewLedgerSavedMessage(document string, transactions int) *LedgerSavedMessage {
	return &LedgerSavedMessage{
		Document:     document,
		Transactions: transactions,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSavedMessageFromJSON creates a message from JSON bytes
func LedgerSavedMessageFromJSON(data []byte) (*LedgerSavedMessage, error) {
	var msg LedgerSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
