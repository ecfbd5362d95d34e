package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
)

// WideTable is the vendor's statement shape: one row per reporting
// period in the vendor's order (most recent first), columns led by the
// two metadata fields. Empty cells mean the vendor omitted the line item
// for that period.
type WideTable struct {
	Columns []string
	Rows    [][]string
}

// The two metadata columns every vendor report carries.
const (
	ColFiscalDateEnding = "fiscalDateEnding"
	ColReportedCurrency = "reportedCurrency"
)

// statement kinds map onto vendor API functions
var apiFunctions = map[domain.StatementKind]string{
	domain.KindBalanceSheet:    "BALANCE_SHEET",
	domain.KindIncomeStatement: "INCOME_STATEMENT",
	domain.KindCashFlow:        "CASH_FLOW",
}

// Client is an Alpha Vantage fundamentals client
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Alpha Vantage client. The API key is injected
// configuration; an empty key still builds a client and every fetch
// reports the vendor's refusal.
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "alphavantage").Logger(),
	}
}

// vendorResponse mirrors the annual-report payload. The vendor reports
// errors and rate limits as 200s with marker keys.
type vendorResponse struct {
	Symbol        string                       `json:"symbol"`
	AnnualReports []map[string]json.RawMessage `json:"annualReports"`
	ErrorMessage  string                       `json:"Error Message"`
	Note          string                       `json:"Note"`
	Information   string                       `json:"Information"`
}

// FetchStatement fetches one fundamental statement as the vendor's wide
// table. Zero reporting periods, a vendor error message, or a rate-limit
// note all surface as domain.ErrStatementUnavailable; only transport
// failures surface as domain.ErrDataSourceUnavailable.
func (c *Client) FetchStatement(ctx context.Context, symbol string, kind domain.StatementKind) (*WideTable, error) {
	fn, ok := apiFunctions[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind: %s", kind)
	}

	params := url.Values{}
	params.Add("function", fn)
	params.Add("symbol", symbol)
	params.Add("apikey", c.apiKey)

	reqURL := c.baseURL + "/query?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrDataSourceUnavailable, resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrDataSourceUnavailable, err)
	}

	var payload vendorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrDataSourceUnavailable, err)
	}

	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrStatementUnavailable, payload.ErrorMessage)
	}
	if payload.Note != "" || payload.Information != "" {
		// Rate limited: the vendor returned zero usable periods
		return nil, fmt.Errorf("%w: rate limited", domain.ErrStatementUnavailable)
	}
	if len(payload.AnnualReports) == 0 {
		return nil, fmt.Errorf("%w: no reporting periods for %s", domain.ErrStatementUnavailable, symbol)
	}

	table := buildWideTable(payload.AnnualReports)

	c.log.Debug().
		Str("symbol", symbol).
		Str("kind", string(kind)).
		Int("periods", len(table.Rows)).
		Msg("Fetched statement")

	return table, nil
}

// buildWideTable flattens the vendor's per-period objects into one grid.
// JSON objects carry no key order, so line-item columns are emitted in
// sorted-name order after the two metadata columns; period row order is
// the vendor's and is preserved.
func buildWideTable(reports []map[string]json.RawMessage) *WideTable {
	seen := map[string]bool{}
	var items []string
	for _, report := range reports {
		for key := range report {
			if key == ColFiscalDateEnding || key == ColReportedCurrency || seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, key)
		}
	}
	sort.Strings(items)

	columns := append([]string{ColFiscalDateEnding, ColReportedCurrency}, items...)

	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellValue(report[col])
		}
		rows = append(rows, row)
	}

	return &WideTable{Columns: columns, Rows: rows}
}

// cellValue renders a raw vendor cell as a plain string. The vendor
// writes the literal "None" for omitted values; both that and a missing
// key become the empty cell.
func cellValue(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Bare numbers appear in some vendor payloads
		return string(raw)
	}

	if s == "None" {
		return ""
	}
	return s
}
