package fundamentals

import (
	"fmt"
	"strconv"

	"github.com/ramalsaham/dashboard/internal/clients/alphavantage"
	"github.com/ramalsaham/dashboard/internal/domain"
)

// Normalize reshapes a vendor wide table into a period-indexed
// statement. The vendor table has one row per reporting period with the
// two metadata columns first; the normalized table transposes it so
// periods become columns, drops both metadata rows, and promotes the
// fiscal period labels to the header. Named failure modes replace the
// silent index errors of positional slicing: zero periods surface as
// domain.ErrStatementUnavailable.
func Normalize(symbol string, kind domain.StatementKind, table *alphavantage.WideTable) (domain.FundamentalStatement, error) {
	if table == nil || len(table.Rows) == 0 {
		return domain.FundamentalStatement{}, fmt.Errorf("%w: vendor returned zero periods for %s",
			domain.ErrStatementUnavailable, symbol)
	}
	if len(table.Columns) < 2 ||
		table.Columns[0] != alphavantage.ColFiscalDateEnding ||
		table.Columns[1] != alphavantage.ColReportedCurrency {
		return domain.FundamentalStatement{}, fmt.Errorf("%w: unexpected vendor table layout",
			domain.ErrStatementUnavailable)
	}

	// Transposed, the first column of each period row becomes the period
	// label and the second the currency metadata row; both leave the body.
	periods := make([]string, len(table.Rows))
	currency := ""
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return domain.FundamentalStatement{}, fmt.Errorf("%w: ragged vendor table",
				domain.ErrStatementUnavailable)
		}
		periods[i] = row[0]
		if currency == "" {
			currency = row[1]
		}
	}

	items := make([]domain.LineItem, 0, len(table.Columns)-2)
	for col := 2; col < len(table.Columns); col++ {
		values := make([]*float64, len(table.Rows))
		for i, row := range table.Rows {
			values[i] = parseCell(row[col])
		}
		items = append(items, domain.LineItem{
			Name:   table.Columns[col],
			Values: values,
		})
	}

	return domain.FundamentalStatement{
		Symbol:   symbol,
		Kind:     kind,
		Currency: currency,
		Periods:  periods,
		Items:    items,
	}, nil
}

// parseCell converts a vendor cell to a signed decimal, nil where the
// vendor omitted the line item
func parseCell(cell string) *float64 {
	if cell == "" {
		return nil
	}
	val, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &val
}
