package sheets

import (
	"context"
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// gridFields limits the grid payload to the cell properties that can carry
// link information.
const gridFields = "sheets(data(rowData(values(hyperlink,userEnteredValue,effectiveValue,textFormatRuns,chipRuns))))"

// hyperlinkFormula matches HYPERLINK("url", "display") and HYPERLINK("url").
var hyperlinkFormula = regexp.MustCompile(`HYPERLINK\("([^"]+)"`)

// hyperlinksForColumn fetches grid data for one worksheet column and returns
// a map of 0-based data-row index (header excluded) to link URL, for every
// cell that carries one.
func (c *Client) hyperlinksForColumn(ctx context.Context, spreadsheetID, title string, columnIdx int) (map[int]string, error) {
	column := columnLetter(columnIdx)
	token, err := c.ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	resp, err := c.grid.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetQueryParams(map[string]string{
			"ranges":          fmt.Sprintf("%s!%s:%s", quoteRange(title), column, column),
			"includeGridData": "true",
			"fields":          gridFields,
		}).
		Get("/spreadsheets/" + spreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("grid request for %q failed: %w", title, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("grid request for %q failed: HTTP %d", title, resp.StatusCode())
	}

	links := make(map[int]string)
	rowData := gjson.GetBytes(resp.Body(), "sheets.0.data.0.rowData").Array()
	if len(rowData) == 0 {
		return links, nil
	}
	// First grid row is the header.
	for i, row := range rowData[1:] {
		cell := row.Get("values.0")
		if !cell.Exists() {
			continue
		}
		if url := extractHyperlink(cell); url != "" {
			links[i] = url
		}
	}
	return links, nil
}

// extractHyperlink resolves the URL behind a grid cell, trying each known
// place the Sheets API can report a link, in fixed priority order:
//
//  1. the cell's direct hyperlink property
//  2. a HYPERLINK formula in the user-entered value
//  3. a hyperlink on the effective value
//  4. a drive-file smart chip (rich link)
//  5. a formatted-text run carrying a link
//
// Returns "" when the cell carries no link; callers fall back to display text.
func extractHyperlink(cell gjson.Result) string {
	if url := cell.Get("hyperlink").String(); url != "" {
		return url
	}

	if formula := cell.Get("userEnteredValue.formulaValue").String(); formula != "" {
		if m := hyperlinkFormula.FindStringSubmatch(formula); m != nil {
			return m[1]
		}
	}

	if url := cell.Get("effectiveValue.hyperlink").String(); url != "" {
		return url
	}

	for _, chipRun := range cell.Get("chipRuns").Array() {
		if url := chipRun.Get("chip.richLinkProperties.uri").String(); url != "" {
			return url
		}
	}

	for _, textRun := range cell.Get("textFormatRuns").Array() {
		if url := textRun.Get("format.link.uri").String(); url != "" {
			return url
		}
	}

	return ""
}

// columnLetter converts a 0-based column index to its A1 letter form.
func columnLetter(idx int) string {
	letters := ""
	for idx >= 0 {
		letters = string(rune('A'+idx%26)) + letters
		idx = idx/26 - 1
	}
	return letters
}
