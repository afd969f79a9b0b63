// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
)

// Código do Postgres para tabela inexistente
const pqUndefinedTable = "42P01"

// RevenueTableSource lê uma tabela de receita do Postgres como fonte tabular do pipeline
type RevenueTableSource struct {
	conn  postgres.Queryer
	table string
}

// NewRevenueTableSource cria a fonte para a tabela informada (aceita schema.tabela)
func NewRevenueTableSource(conn postgres.Queryer, table string) *RevenueTableSource {
	return &RevenueTableSource{
		conn:  conn,
		table: table,
	}
}

// Name é a identidade da fonte
func (r *RevenueTableSource) Name() string {
	return "postgres:" + r.table
}

// quotedTable protege cada parte do nome da tabela
func (r *RevenueTableSource) quotedTable() string {
	parts := strings.Split(r.table, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

func (r *RevenueTableSource) fingerprintQuery() (string, []any, error) {
	return squirrel.
		Select(
			"COUNT(*)",
			"COALESCE(MD5(STRING_AGG(t::text, '|' ORDER BY t::text)), '')",
		).
		From(r.quotedTable() + " t").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *RevenueTableSource) readQuery() (string, []any, error) {
	return squirrel.
		Select("*").
		From(r.quotedTable()).
		OrderBy("1 ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// Fingerprint identifica a versão da tabela pela contagem de linhas e um hash do conteúdo
func (r *RevenueTableSource) Fingerprint(ctx context.Context) (revenue.SourceIdentity, error) {
	query, args, err := r.fingerprintQuery()
	if err != nil {
		return revenue.SourceIdentity{}, revenue.NewLoadError(r.Name(), "erro ao construir a query", err)
	}

	var (
		count int64
		hash  string
	)
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count, &hash); err != nil {
		return revenue.SourceIdentity{}, r.loadError(err)
	}

	return revenue.SourceIdentity{
		Name:    r.Name(),
		Version: fmt.Sprintf("%d-%s", count, hash),
	}, nil
}

// ReadTable lê a tabela inteira, convertendo cada célula para texto
func (r *RevenueTableSource) ReadTable(ctx context.Context) (*revenue.Table, error) {
	query, args, err := r.readQuery()
	if err != nil {
		return nil, revenue.NewLoadError(r.Name(), "erro ao construir a query", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.loadError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, r.loadError(errors.Wrap(err, "erro ao ler colunas"))
	}

	table := &revenue.Table{Header: columns, Rows: make([][]string, 0)}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, r.loadError(errors.Wrapf(err, "erro ao escanear linha %d", len(table.Rows)+1))
		}

		// NULL vira célula vazia e falha na conversão do pipeline
		row := make([]string, len(columns))
		for i, cell := range cells {
			row[i] = cell.String
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, r.loadError(err)
	}

	return table, nil
}

func (r *RevenueTableSource) loadError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable {
		return revenue.NewLoadError(r.Name(), "tabela inexistente", err)
	}
	return revenue.NewLoadError(r.Name(), "erro ao consultar a tabela", err)
}
