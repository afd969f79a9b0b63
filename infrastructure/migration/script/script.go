// Script de carga: copia os CSVs de receita para as tabelas lidas pela fonte postgres.
// As células são gravadas como texto; a conversão continua sendo feita pelo pipeline.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-dashboard-api/infrastructure/source/csvfile"
	"github.com/vfg2006/revenue-dashboard-api/internal/config"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
	"github.com/vfg2006/revenue-dashboard-api/pkg/log"
	"github.com/vfg2006/revenue-dashboard-api/pkg/utils"
)

// seedTarget liga um arquivo CSV a uma tabela de destino
type seedTarget struct {
	path       string
	table      string
	dateColumn string
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

// createTableSQL cria a tabela com a posição original como primeira coluna,
// para que a leitura ordenada pela coluna 1 devolva as linhas na ordem do arquivo
func createTableSQL(target seedTarget) string {
	return fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (position INTEGER PRIMARY KEY, %s TEXT NOT NULL, %s TEXT NOT NULL, import_id TEXT NOT NULL)`,
		quoteTable(target.table),
		pq.QuoteIdentifier(strings.ToLower(target.dateColumn)),
		pq.QuoteIdentifier(strings.ToLower(revenue.ColumnRevenue)),
	)
}

// insertQuery monta um INSERT com todas as linhas da tabela CSV
func insertQuery(target seedTarget, table *revenue.Table, importID string) (string, []any, error) {
	dateIdx := table.ColumnIndex(target.dateColumn)
	revenueIdx := table.ColumnIndex(revenue.ColumnRevenue)
	if dateIdx < 0 || revenueIdx < 0 {
		return "", nil, fmt.Errorf("%s: colunas %s e %s são obrigatórias", target.path, target.dateColumn, revenue.ColumnRevenue)
	}

	builder := squirrel.
		Insert(quoteTable(target.table)).
		Columns("position", strings.ToLower(target.dateColumn), strings.ToLower(revenue.ColumnRevenue), "import_id").
		PlaceholderFormat(squirrel.Dollar)

	for i, row := range table.Rows {
		if dateIdx >= len(row) || revenueIdx >= len(row) {
			return "", nil, fmt.Errorf("%s: linha %d com colunas faltando", target.path, i+1)
		}
		builder = builder.Values(i+1, strings.TrimSpace(row[dateIdx]), strings.TrimSpace(row[revenueIdx]), importID)
	}

	return builder.ToSql()
}

func seedTable(ctx context.Context, tx execer, target seedTarget, table *revenue.Table, importID string) error {
	if _, err := tx.ExecContext(ctx, createTableSQL(target)); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", target.table, err)
	}

	if _, err := tx.ExecContext(ctx, "TRUNCATE "+quoteTable(target.table)); err != nil {
		return fmt.Errorf("erro ao limpar tabela %s: %w", target.table, err)
	}

	if len(table.Rows) == 0 {
		return nil
	}

	query, args, err := insertQuery(target, table, importID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir linhas em %s: %w", target.table, err)
	}

	return nil
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)
	logrus.Info("Iniciando script de carga das tabelas de receita...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	importID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar identificador da carga")
	}

	targets := []seedTarget{
		{path: cfg.Source.MonthlyPath, table: cfg.Source.MonthlyTable, dateColumn: revenue.ColumnMonth},
		{path: cfg.Source.YearlyPath, table: cfg.Source.YearlyTable, dateColumn: revenue.ColumnYear},
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar transação")
	}

	for _, target := range targets {
		startTime := time.Now()

		table, err := csvfile.New(target.path).ReadTable(ctx)
		if err != nil {
			_ = tx.Rollback()
			logrus.WithError(err).Fatal("Erro ao ler arquivo CSV")
		}

		if err := seedTable(ctx, tx, target, table, importID); err != nil {
			_ = tx.Rollback()
			logrus.WithError(err).Fatal("Erro ao carregar tabela")
		}

		logrus.WithFields(logrus.Fields{
			"table":     target.table,
			"rows":      len(table.Rows),
			"import_id": importID,
			"elapsed":   time.Since(startTime),
		}).Info("Tabela carregada")
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("Erro ao confirmar transação")
	}

	logrus.Info("Carga das tabelas de receita concluída")
}
