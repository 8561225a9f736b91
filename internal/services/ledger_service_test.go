package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"kassa/internal/core"
	"kassa/internal/ledger"
	"kassa/internal/storage"
)

type fakePublisher struct {
	created []core.Transaction
	deleted []string
	fail    bool
}

func (f *fakePublisher) PublishCreated(_ context.Context, tx core.Transaction) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.created = append(f.created, tx)
	return nil
}

func (f *fakePublisher) PublishDeleted(_ context.Context, id, orderNumber string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.deleted = append(f.deleted, orderNumber)
	return nil
}

func newService(t *testing.T, events EventPublisher) *LedgerService {
	t.Helper()
	store, err := ledger.New(context.Background(), storage.NewMemoryKV())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewLedgerService(store, events)
}

func draft() core.Draft {
	return core.Draft{
		Type:   core.Income,
		Amount: decimal.NewFromInt(1000),
		Date:   "2024-01-01",
		Income: &core.IncomeDetails{Payer: "A"},
	}
}

func TestAddValidatesAtBoundary(t *testing.T) {
	svc := newService(t, nil)

	bad := draft()
	bad.Date = "not-a-date"
	if _, err := svc.Add(context.Background(), bad); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.Store().Count() != 0 {
		t.Fatal("invalid draft reached the ledger")
	}
}

func TestAddPublishesCreatedEvent(t *testing.T) {
	events := &fakePublisher{}
	svc := newService(t, events)

	tx, err := svc.Add(context.Background(), draft())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(events.created) != 1 || events.created[0].ID != tx.ID {
		t.Fatalf("created events = %+v", events.created)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	events := &fakePublisher{fail: true}
	svc := newService(t, events)

	if _, err := svc.Add(context.Background(), draft()); err != nil {
		t.Fatalf("add failed on publish error: %v", err)
	}
	if svc.Store().Count() != 1 {
		t.Fatalf("count = %d", svc.Store().Count())
	}

	all := svc.Store().All()
	if ok, err := svc.Delete(context.Background(), all[0].ID); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
}

func TestDeletePublishesOrderNumber(t *testing.T) {
	events := &fakePublisher{}
	svc := newService(t, events)

	tx, err := svc.Add(context.Background(), draft())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	ok, err := svc.Delete(context.Background(), tx.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if len(events.deleted) != 1 || events.deleted[0] != tx.OrderNumber {
		t.Fatalf("deleted events = %+v", events.deleted)
	}

	// Unknown id is a soft outcome and publishes nothing.
	ok, err = svc.Delete(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("soft delete: ok=%v err=%v", ok, err)
	}
	if len(events.deleted) != 1 {
		t.Fatalf("unexpected event for missing id: %+v", events.deleted)
	}
}

func TestCloseWithoutPublisher(t *testing.T) {
	svc := newService(t, nil)
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
