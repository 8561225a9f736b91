package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"kassa/internal/core"
	"kassa/internal/ledger"
)

// EventPublisher pushes ledger events to the export queue. Publishing is best
// effort: a failed publish never fails the mutation that triggered it.
type EventPublisher interface {
	PublishCreated(ctx context.Context, tx core.Transaction) error
	PublishDeleted(ctx context.Context, id, orderNumber string) error
}

// LedgerService fronts the ledger store for the HTTP layer: it validates
// drafts at the boundary and emits export events after successful mutations.
type LedgerService struct {
	store  *ledger.Store
	events EventPublisher
}

func NewLedgerService(store *ledger.Store, events EventPublisher) *LedgerService {
	return &LedgerService{
		store:  store,
		events: events,
	}
}

// Store exposes the read API of the underlying ledger.
func (s *LedgerService) Store() *ledger.Store {
	return s.store
}

// Add validates the draft, records it and publishes a created event.
func (s *LedgerService) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate draft: %w", err)
	}

	tx, err := s.store.Add(ctx, d)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishCreated(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to publish created event",
				"id", tx.ID, "order_number", tx.OrderNumber, "error", err)
			// Don't fail the request - the ledger write succeeded
		}
	}

	return tx, nil
}

// Delete removes the transaction and publishes a deleted event. A missing id
// is the soft (false, nil) outcome.
func (s *LedgerService) Delete(ctx context.Context, id string) (bool, error) {
	// Grab the order number before the record disappears; the worker needs it
	// to locate the mirrored spreadsheet row.
	orderNumber := ""
	for _, tx := range s.store.All() {
		if tx.ID == id {
			orderNumber = tx.OrderNumber
			break
		}
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	if !deleted {
		return false, nil
	}

	if s.events != nil {
		if err := s.events.PublishDeleted(ctx, id, orderNumber); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deleted event",
				"id", id, "order_number", orderNumber, "error", err)
			// Don't fail the request - the ledger write succeeded
		}
	}

	return true, nil
}

// Close releases the event publisher if it holds a connection.
func (s *LedgerService) Close() error {
	if closer, ok := s.events.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close event publisher: %w", err)
		}
	}
	return nil
}
