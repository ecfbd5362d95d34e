package fundamentals

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramalsaham/dashboard/internal/clients/alphavantage"
	"github.com/ramalsaham/dashboard/internal/domain"
)

// fakeSource serves canned tables per statement kind
type fakeSource struct {
	tables map[domain.StatementKind]*alphavantage.WideTable
	errs   map[domain.StatementKind]error
}

func (f *fakeSource) FetchStatement(ctx context.Context, symbol string, kind domain.StatementKind) (*alphavantage.WideTable, error) {
	if err := f.errs[kind]; err != nil {
		return nil, err
	}
	table, ok := f.tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no fixture", domain.ErrStatementUnavailable)
	}
	return table, nil
}

func minimalTable() *alphavantage.WideTable {
	return &alphavantage.WideTable{
		Columns: []string{alphavantage.ColFiscalDateEnding, alphavantage.ColReportedCurrency, "netIncome"},
		Rows:    [][]string{{"2023-12-31", "USD", "1000"}},
	}
}

func TestFetchAllKindsIndependent(t *testing.T) {
	source := &fakeSource{
		tables: map[domain.StatementKind]*alphavantage.WideTable{
			domain.KindBalanceSheet: minimalTable(),
			domain.KindCashFlow:     minimalTable(),
		},
		errs: map[domain.StatementKind]error{
			domain.KindIncomeStatement: fmt.Errorf("%w: rate limited", domain.ErrStatementUnavailable),
		},
	}

	service := NewService(source, zerolog.Nop())
	results := service.FetchAll(context.Background(), "AAPL")

	require.Len(t, results, 3)
	assert.NoError(t, results[domain.KindBalanceSheet].Err)
	assert.NoError(t, results[domain.KindCashFlow].Err)
	assert.True(t, errors.Is(results[domain.KindIncomeStatement].Err, domain.ErrStatementUnavailable),
		"one failing kind must not block the others")

	assert.Equal(t, []string{"2023-12-31"}, results[domain.KindBalanceSheet].Statement.Periods)
}

func TestFetchNormalizes(t *testing.T) {
	source := &fakeSource{
		tables: map[domain.StatementKind]*alphavantage.WideTable{
			domain.KindBalanceSheet: minimalTable(),
		},
	}

	service := NewService(source, zerolog.Nop())
	statement, err := service.Fetch(context.Background(), "AAPL", domain.KindBalanceSheet)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", statement.Symbol)
	require.Len(t, statement.Items, 1)
	assert.Equal(t, "netIncome", statement.Items[0].Name)
}
