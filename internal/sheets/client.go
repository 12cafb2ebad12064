package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/lucemia/agent-hr/internal/importer"
)

const (
	readScope = "https://www.googleapis.com/auth/spreadsheets.readonly"
	apiBase   = "https://sheets.googleapis.com/v4"

	// requestTimeout bounds every network call; fetches are not retried.
	requestTimeout = 30 * time.Second
)

// FetchOptions controls how a spreadsheet is flattened into one table.
type FetchOptions struct {
	// HyperlinkColumns names native header columns whose cells may carry a
	// link behind the display text (e.g. a resume filename linking to a
	// drive file). For those cells the link URL wins over the text.
	HyperlinkColumns []string

	// PositionColumn, when set, is stamped on every row with the title of
	// the worksheet the row came from, overriding any same-named native
	// column. Used by position-per-worksheet sources.
	PositionColumn string
}

// Client fetches spreadsheet data through the Sheets API. Worksheet values
// come through the typed API client; hyperlink metadata needs grid-level
// fields the typed client does not model, so it is fetched raw and parsed
// with gjson.
type Client struct {
	svc  *sheetsapi.Service
	grid *resty.Client
	ts   oauth2.TokenSource
	log  *slog.Logger
}

// NewClient authenticates with the resolved service-account credentials and
// returns a read-only Sheets client.
func NewClient(ctx context.Context) (*Client, error) {
	credentials, err := LoadCredentials()
	if err != nil {
		return nil, err
	}

	cfg, err := google.JWTConfigFromJSON(credentials, readScope)
	if err != nil {
		return nil, &CredentialsError{
			Message: fmt.Sprintf("credentials for %s are not usable for JWT auth", ServiceAccountEmail(credentials)),
			Cause:   err,
		}
	}
	ts := cfg.TokenSource(ctx)

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	grid := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(requestTimeout)

	return &Client{
		svc:  svc,
		grid: grid,
		ts:   ts,
		log:  slog.Default(),
	}, nil
}

// FetchSpreadsheet flattens every non-empty worksheet of the spreadsheet
// into one table. Each worksheet contributes its rows under the union of all
// headers; when opts.PositionColumn is set, each row is stamped with its
// worksheet's title.
func (c *Client) FetchSpreadsheet(ctx context.Context, spreadsheetID string, opts FetchOptions) (*importer.Table, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties(title,sheetId)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet %s: %w", spreadsheetID, err)
	}

	combined := &importer.Table{}
	if opts.PositionColumn != "" {
		combined.AddColumn(opts.PositionColumn)
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties == nil {
			continue
		}
		title := sheet.Properties.Title

		tab, err := c.fetchWorksheet(ctx, spreadsheetID, title, opts)
		if err != nil {
			return nil, err
		}
		if tab.Len() == 0 {
			continue
		}

		for _, col := range tab.Columns {
			combined.AddColumn(col)
		}
		for _, row := range tab.Rows {
			if opts.PositionColumn != "" {
				row[opts.PositionColumn] = title
			}
			combined.Rows = append(combined.Rows, row)
		}
	}

	return combined, nil
}

// fetchWorksheet reads one worksheet's values and resolves hyperlink-bearing
// cells for the configured columns. A sheet without data rows is skipped.
func (c *Client) fetchWorksheet(ctx context.Context, spreadsheetID, title string, opts FetchOptions) (*importer.Table, error) {
	values, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, quoteRange(title)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", title, err)
	}
	if len(values.Values) < 2 {
		return &importer.Table{}, nil
	}

	header := make([]string, len(values.Values[0]))
	for i, cell := range values.Values[0] {
		header[i] = fmt.Sprintf("%v", cell)
	}

	table := importer.NewTable(header, values.Values[1:])

	for _, column := range opts.HyperlinkColumns {
		idx := columnIndex(header, column)
		if idx < 0 {
			continue
		}
		links, err := c.hyperlinksForColumn(ctx, spreadsheetID, title, idx)
		if err != nil {
			// Display text is an acceptable fallback when link metadata is
			// unavailable; the sheet itself was already fetched fine.
			c.log.Warn("hyperlink extraction failed",
				"worksheet", title, "column", column, "error", err)
			continue
		}
		for rowIdx, url := range links {
			if rowIdx < len(table.Rows) {
				table.Rows[rowIdx][column] = url
			}
		}
	}

	return table, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// quoteRange wraps a worksheet title for use as an A1 range. Embedded
// single quotes are doubled per A1 notation.
func quoteRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
