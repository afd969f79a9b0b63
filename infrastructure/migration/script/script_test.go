package main

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
)

type recordingExecer struct {
	queries []string
	args    [][]any
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
	return nil, nil
}

var monthlyTarget = seedTarget{path: "monthly_revenue.csv", table: "finance.monthly_revenue", dateColumn: revenue.ColumnMonth}

func TestCreateTableSQL(t *testing.T) {
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "finance"."monthly_revenue" (position INTEGER PRIMARY KEY, "month" TEXT NOT NULL, "revenue" TEXT NOT NULL, import_id TEXT NOT NULL)`,
		createTableSQL(monthlyTarget),
	)
}

func TestInsertQuery(t *testing.T) {
	table := &revenue.Table{
		Header: []string{"Revenue", "Month"},
		Rows:   [][]string{{"1000", "2023-01"}, {" 1500 ", "2023-02"}},
	}

	query, args, err := insertQuery(monthlyTarget, table, "abc12345")
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "finance"."monthly_revenue" (position,month,revenue,import_id) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)`, query)
	assert.Equal(t, []any{1, "2023-01", "1000", "abc12345", 2, "2023-02", "1500", "abc12345"}, args)
}

func TestInsertQuery_Errors(t *testing.T) {
	_, _, err := insertQuery(monthlyTarget, &revenue.Table{Header: []string{"Month"}}, "id")
	assert.Error(t, err)

	_, _, err = insertQuery(monthlyTarget, &revenue.Table{
		Header: []string{"Month", "Revenue"},
		Rows:   [][]string{{"2023-01"}},
	}, "id")
	assert.Error(t, err)
}

func TestSeedTable(t *testing.T) {
	tx := &recordingExecer{}
	table := &revenue.Table{Header: []string{"Month", "Revenue"}, Rows: [][]string{{"2023-01", "1000"}}}

	require.NoError(t, seedTable(context.Background(), tx, monthlyTarget, table, "id"))

	require.Len(t, tx.queries, 3)
	assert.Contains(t, tx.queries[0], "CREATE TABLE")
	assert.Equal(t, `TRUNCATE "finance"."monthly_revenue"`, tx.queries[1])
	assert.Contains(t, tx.queries[2], "INSERT INTO")
}

func TestSeedTable_EmptyFileOnlyTruncates(t *testing.T) {
	tx := &recordingExecer{}

	require.NoError(t, seedTable(context.Background(), tx, monthlyTarget, &revenue.Table{Header: []string{"Month", "Revenue"}}, "id"))

	assert.Len(t, tx.queries, 2)
}
