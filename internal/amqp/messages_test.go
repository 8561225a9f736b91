package amqp

import (
	"testing"

	"github.com/shopspring/decimal"

	"kassa/internal/core"
)

func TestTransactionMessageJSON(t *testing.T) {
	tx := core.Transaction{
		ID:          "tx-1",
		OrderNumber: "KK-2024-0001",
		Type:        core.Income,
		Amount:      decimal.NewFromInt(1000),
		Date:        "2024-01-01",
		Income:      &core.IncomeDetails{Payer: "A", Debit: "50", Credit: "90"},
	}

	msg := NewCreatedMessage(tx)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TransactionMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindCreated {
		t.Fatalf("kind = %q", got.Kind)
	}
	if got.Transaction == nil || got.Transaction.ID != "tx-1" {
		t.Fatalf("transaction lost: %+v", got.Transaction)
	}
	if !got.Transaction.Amount.Equal(tx.Amount) {
		t.Fatalf("amount = %s", got.Transaction.Amount)
	}
	if got.Transaction.Income == nil || got.Transaction.Income.Payer != "A" {
		t.Fatalf("income details lost: %+v", got.Transaction.Income)
	}
}

func TestDeletedMessageCarriesNoPayload(t *testing.T) {
	msg := NewDeletedMessage("tx-2", "CHQ-2024-0001")
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := TransactionMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindDeleted || got.ID != "tx-2" || got.OrderNumber != "CHQ-2024-0001" {
		t.Fatalf("deleted message = %+v", got)
	}
	if got.Transaction != nil {
		t.Fatalf("unexpected payload on delete: %+v", got.Transaction)
	}
}

func TestBadMessageJSON(t *testing.T) {
	if _, err := TransactionMessageFromJSON([]byte("{nope")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
