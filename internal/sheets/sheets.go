// Package sheets appends exported transactions to a Google Sheets
// spreadsheet. The spreadsheet is a write-only export sink; the SQLite
// ledger stays the source of truth.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv builds a client from GOOGLE_SPREADSHEET_ID,
// GOOGLE_SHEET_NAME and service-account credentials provided either
// inline (GOOGLE_CREDENTIALS_JSON) or as a file path
// (GOOGLE_CREDENTIALS_FILE).
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SPREADSHEET_ID is required")
	}
	sheetName := os.Getenv("GOOGLE_SHEET_NAME")
	if sheetName == "" {
		sheetName = "Transactions"
	}

	credentialsJSON := []byte(os.Getenv("GOOGLE_CREDENTIALS_JSON"))
	if len(credentialsJSON) == 0 {
		path := os.Getenv("GOOGLE_CREDENTIALS_FILE")
		if path == "" {
			return nil, fmt.Errorf("either GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE is required")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendTransaction appends one transaction as a spreadsheet row, in
// the same column order as the CSV export.
func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) error {
	vr := &gsheet.ValueRange{
		Values: [][]interface{}{{
			t.ID,
			t.Date.String(),
			string(t.Type),
			t.Category,
			t.Amount.String(),
			t.Note,
		}},
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Transaction appended to spreadsheet",
		"id", t.ID,
		"sheet", c.sheetName)
	return nil
}
