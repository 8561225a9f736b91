package sheets

import (
	"context"

	"kassa/internal/core"
)

// Ports for the spreadsheet mirror of the cash book.
type (
	// RowAppender mirrors a newly recorded order into the export sheet.
	RowAppender interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) error
	}

	// RowRemover clears the mirrored row of a deleted order, located by its
	// order number.
	RowRemover interface {
		RemoveOrder(ctx context.Context, orderNumber string) error
	}
)
