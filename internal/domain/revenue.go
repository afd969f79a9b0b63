// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Record é um registro de receita associado a uma data normalizada
type Record interface {
	PeriodDate() time.Time
	Amount() decimal.Decimal
}

// MonthlyRecord representa a receita de um mês (Month normalizado para o dia 1)
type MonthlyRecord struct {
	Month   time.Time       `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

func (r MonthlyRecord) PeriodDate() time.Time   { return r.Month }
func (r MonthlyRecord) Amount() decimal.Decimal { return r.Revenue }

// YearlyRecord representa a receita de um ano (Year normalizado para 1º de janeiro)
type YearlyRecord struct {
	Year    time.Time       `json:"year"`
	Revenue decimal.Decimal `json:"revenue"`
}

func (r YearlyRecord) PeriodDate() time.Time   { return r.Year }
func (r YearlyRecord) Amount() decimal.Decimal { return r.Revenue }

// Dataset é uma tabela de receita carregada de uma fonte externa.
// Imutável após a carga: os registros só são expostos por cópia.
type Dataset[R Record] struct {
	Source   string    `json:"source"`
	Version  string    `json:"version"`
	LoadID   string    `json:"load_id"`
	LoadedAt time.Time `json:"loaded_at"`
	records  []R
}

type (
	MonthlyDataset = Dataset[MonthlyRecord]
	YearlyDataset  = Dataset[YearlyRecord]
)

// NewDataset cria um dataset a partir dos registros na ordem da fonte
func NewDataset[R Record](source, version, loadID string, loadedAt time.Time, records []R) *Dataset[R] {
	return &Dataset[R]{
		Source:   source,
		Version:  version,
		LoadID:   loadID,
		LoadedAt: loadedAt,
		records:  slices.Clone(records),
	}
}

// Len retorna o número de registros
func (d *Dataset[R]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records retorna uma cópia dos registros na ordem da fonte
func (d *Dataset[R]) Records() []R {
	if d == nil {
		return []R{}
	}
	return slices.Clone(d.records)
}

// SortedView retorna uma nova sequência ordenada pela data do registro.
// A ordenação é estável e o dataset não é alterado.
func SortedView[R Record](d *Dataset[R], ascending bool) []R {
	view := d.Records()
	slices.SortStableFunc(view, func(a, b R) int {
		c := a.PeriodDate().Compare(b.PeriodDate())
		if !ascending {
			return -c
		}
		return c
	})
	return view
}

// SummaryMetrics são os KPIs derivados da tabela mensal
type SummaryMetrics struct {
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	AverageMonthlyRevenue decimal.Decimal `json:"average_monthly_revenue"`
	BestMonthRevenue      decimal.Decimal `json:"best_month_revenue"`
	BestMonth             time.Time       `json:"best_month"`
	DataPointCount        int             `json:"data_point_count"`
}
