package amqp

import (
	"encoding/json"
	"time"

	"kassa/internal/core"
)

// Message kinds routed over the export queue.
const (
	KindCreated = "created"
	KindDeleted = "deleted"
)

// TransactionMessage is the export-queue envelope. Created messages carry the
// full transaction so the worker never has to read the ledger back; deleted
// messages carry the id and order number needed to locate the mirrored row.
type TransactionMessage struct {
	Kind        string            `json:"kind"`
	Transaction *core.Transaction `json:"transaction,omitempty"`
	ID          string            `json:"id"`
	OrderNumber string            `json:"orderNumber"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewCreatedMessage builds the message published after a successful add.
func NewCreatedMessage(tx core.Transaction) *TransactionMessage {
	return &TransactionMessage{
		Kind:        KindCreated,
		Transaction: &tx,
		ID:          tx.ID,
		OrderNumber: tx.OrderNumber,
		Timestamp:   time.Now(),
	}
}

// NewDeletedMessage builds the message published after a successful delete.
func NewDeletedMessage(id, orderNumber string) *TransactionMessage {
	return &TransactionMessage{
		Kind:        KindDeleted,
		ID:          id,
		OrderNumber: orderNumber,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionMessageFromJSON creates a message from JSON bytes
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
