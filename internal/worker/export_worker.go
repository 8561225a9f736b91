// Package worker consumes ledger events and keeps the spreadsheet mirror of
// the cash book in step with the store.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kassa/internal/amqp"
	"kassa/internal/sheets"
)

// ExportWorker applies export-queue messages to the spreadsheet mirror.
type ExportWorker struct {
	appender sheets.RowAppender
	remover  sheets.RowRemover
}

func NewExportWorker(appender sheets.RowAppender, remover sheets.RowRemover) *ExportWorker {
	return &ExportWorker{
		appender: appender,
		remover:  remover,
	}
}

// HandleMessage processes one export event. A returned error requeues the
// message, so handlers must be safe to retry.
func (w *ExportWorker) HandleMessage(msg *amqp.TransactionMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch msg.Kind {
	case amqp.KindCreated:
		if msg.Transaction == nil {
			// Drop rather than requeue: the payload will not grow back.
			slog.WarnContext(ctx, "Created event without payload, skipping", "id", msg.ID)
			return nil
		}
		if err := w.appender.AppendTransaction(ctx, *msg.Transaction); err != nil {
			return fmt.Errorf("append order %s: %w", msg.OrderNumber, err)
		}
		return nil

	case amqp.KindDeleted:
		if err := w.remover.RemoveOrder(ctx, msg.OrderNumber); err != nil {
			return fmt.Errorf("remove order %s: %w", msg.OrderNumber, err)
		}
		return nil

	default:
		slog.WarnContext(ctx, "Unknown event kind, skipping", "kind", msg.Kind, "id", msg.ID)
		return nil
	}
}
