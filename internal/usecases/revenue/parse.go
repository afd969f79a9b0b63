package revenue

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-dashboard-api/internal/domain"
	"github.com/vfg2006/revenue-dashboard-api/pkg/utils"
)

// Colunas obrigatórias de cada tabela
const (
	ColumnMonth   = "Month"
	ColumnYear    = "Year"
	ColumnRevenue = "Revenue"
)

// tableSchema descreve como converter uma tabela bruta em registros
type tableSchema[R domain.Record] struct {
	dateColumn string
	normalize  func(time.Time) time.Time
	build      func(date time.Time, revenue decimal.Decimal) R
}

var monthlySchema = tableSchema[domain.MonthlyRecord]{
	dateColumn: ColumnMonth,
	normalize:  utils.FirstDayOfMonth,
	build: func(date time.Time, revenue decimal.Decimal) domain.MonthlyRecord {
		return domain.MonthlyRecord{Month: date, Revenue: revenue}
	},
}

var yearlySchema = tableSchema[domain.YearlyRecord]{
	dateColumn: ColumnYear,
	normalize:  utils.FirstDayOfYear,
	build: func(date time.Time, revenue decimal.Decimal) domain.YearlyRecord {
		return domain.YearlyRecord{Year: date, Revenue: revenue}
	},
}

// parseRecords converte todas as linhas da tabela ou falha na primeira célula inválida
func parseRecords[R domain.Record](source string, table *Table, schema tableSchema[R]) ([]R, error) {
	dateIdx := table.ColumnIndex(schema.dateColumn)
	if dateIdx < 0 {
		return nil, NewLoadError(source, "coluna obrigatória ausente: "+schema.dateColumn, nil)
	}

	revenueIdx := table.ColumnIndex(ColumnRevenue)
	if revenueIdx < 0 {
		return nil, NewLoadError(source, "coluna obrigatória ausente: "+ColumnRevenue, nil)
	}

	records := make([]R, 0, len(table.Rows))
	for i, row := range table.Rows {
		line := i + 1

		if dateIdx >= len(row) || revenueIdx >= len(row) {
			return nil, NewLoadError(source, "linha com colunas faltando", nil)
		}

		date, err := utils.ParseDate(row[dateIdx])
		if err != nil {
			return nil, NewParseError(source, line, schema.dateColumn, err)
		}

		revenue, err := decimal.NewFromString(strings.TrimSpace(row[revenueIdx]))
		if err != nil {
			return nil, NewParseError(source, line, ColumnRevenue, err)
		}

		records = append(records, schema.build(schema.normalize(date), revenue))
	}

	return records, nil
}
