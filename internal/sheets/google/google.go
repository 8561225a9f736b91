// Package google mirrors ledger orders into a Google Spreadsheet, the digital
// twin of the paper kassa kitobi.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"kassa/internal/core"
	ports "kassa/internal/sheets"
)

// Column layout of the export sheet:
// A date, B order number, C type, D counterparty, E amount,
// F debit, G credit, H purpose, I notes/docRef.
const exportColumns = "A:I"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var (
	_ ports.RowAppender = (*Client)(nil)
	_ ports.RowRemover  = (*Client)(nil)
)

// New creates a Sheets client for the given spreadsheet and sheet.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	// Also check the standard Google Cloud environment variable
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// AppendTransaction adds one order row to the export sheet.
func (c *Client) AppendTransaction(ctx context.Context, tx core.Transaction) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	counterparty, extra := "", ""
	switch tx.Type {
	case core.Income:
		if tx.Income != nil {
			counterparty = tx.Income.Payer
			extra = tx.Income.Notes
		}
	case core.Expense:
		if tx.Expense != nil {
			counterparty = tx.Expense.Recipient
			extra = tx.Expense.DocRef
		}
	}
	debit, credit, purpose := detailAccounts(tx)

	row := []any{
		tx.Date,
		tx.OrderNumber,
		string(tx.Type),
		counterparty,
		tx.Amount.String(),
		debit,
		credit,
		purpose,
		extra,
	}

	rng := fmt.Sprintf("%s!%s", c.sheetName, exportColumns)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Order mirrored to spreadsheet",
		"order_number", tx.OrderNumber,
		"sheet", c.sheetName)
	return nil
}

// RemoveOrder locates the row carrying the order number and clears it.
// An order that was never mirrored is not an error.
func (c *Client) RemoveOrder(ctx context.Context, orderNumber string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil
	}

	// Order numbers live in column B.
	rng := fmt.Sprintf("%s!B:B", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read order numbers from sheet %s: %w", c.sheetName, err)
	}

	rowIndex := -1
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if v, ok := row[0].(string); ok && v == orderNumber {
			rowIndex = i + 1 // sheet rows are 1-based
			break
		}
	}
	if rowIndex == -1 {
		slog.WarnContext(ctx, "Order not found in spreadsheet, nothing to clear",
			"order_number", orderNumber, "sheet", c.sheetName)
		return nil
	}

	clearRange := fmt.Sprintf("%s!A%d:I%d", c.sheetName, rowIndex, rowIndex)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row %d in sheet %s: %w", rowIndex, c.sheetName, err)
	}

	slog.InfoContext(ctx, "Mirrored order cleared from spreadsheet",
		"order_number", orderNumber,
		"row", rowIndex,
		"sheet", c.sheetName)
	return nil
}

func detailAccounts(tx core.Transaction) (debit, credit, purpose string) {
	switch {
	case tx.Income != nil:
		return tx.Income.Debit, tx.Income.Credit, tx.Income.Purpose
	case tx.Expense != nil:
		return tx.Expense.Debit, tx.Expense.Credit, tx.Expense.Purpose
	}
	return "", "", ""
}
