// Package gsheet exports category reports to a Google spreadsheet using a
// service account.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	goption "google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Exporter appends report blocks to one sheet of a configured spreadsheet.
type Exporter struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
	now           func() time.Time
}

// New builds the exporter from config. Credentials come either inline or
// from a file; inline wins when both are set.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Exporter, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var credentials []byte
	switch {
	case cfg.GoogleCredentialsJSON != "":
		credentials = []byte(cfg.GoogleCredentialsJSON)
	case cfg.GoogleCredentialsFile != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentials = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := sheets.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
		logger:        logger.WithComponent(log.ComponentExport),
		now:           time.Now,
	}, nil
}

// ExportCategoryReport appends the report as a titled block and returns the
// spreadsheet URL.
func (e *Exporter) ExportCategoryReport(ctx context.Context, title string, report map[string]core.Money) (string, error) {
	values := reportRows(title, report, e.now().UTC())

	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, e.sheetName, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append report: %w", err)
	}

	e.logger.InfoContext(ctx, "report exported",
		"spreadsheet_id", e.spreadsheetID, "rows", len(values))
	return "https://docs.google.com/spreadsheets/d/" + e.spreadsheetID, nil
}

// reportRows renders a report block: a title line, a header, one row per
// category in alphabetical order, and a net total.
func reportRows(title string, report map[string]core.Money, at time.Time) [][]any {
	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]any, 0, len(keys)+3)
	rows = append(rows,
		[]any{title, at.Format("2006-01-02 15:04")},
		[]any{"Category", "Net total"})

	total := core.ZeroMoney()
	for _, k := range keys {
		rows = append(rows, []any{k, report[k].String()})
		total = total.Add(report[k])
	}
	rows = append(rows, []any{"Total", total.String()})
	return rows
}
