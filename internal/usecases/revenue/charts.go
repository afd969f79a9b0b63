package revenue

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-dashboard-api/internal/domain"
)

// Tipos de gráfico do dashboard
const (
	ChartKindLine = "line"
	ChartKindBar  = "bar"
)

// Charts monta as séries na ordem da fonte: linha para o mensal, barras para o anual
func (s *Service) Charts(monthly *domain.MonthlyDataset, yearly *domain.YearlyDataset) domain.Charts {
	return domain.Charts{
		MonthlyTrend:  buildSeries(ChartKindLine, monthly.Records()),
		YearlyRevenue: buildSeries(ChartKindBar, yearly.Records()),
	}
}

func buildSeries[R domain.Record](kind string, records []R) domain.ChartSeries {
	series := domain.ChartSeries{
		Kind:   kind,
		Points: make([]domain.ChartPoint, 0, len(records)),
		Min:    decimal.Zero,
		Max:    decimal.Zero,
	}

	for i, record := range records {
		revenue := record.Amount()
		series.Points = append(series.Points, domain.ChartPoint{
			Period:  record.PeriodDate(),
			Revenue: revenue,
		})

		if i == 0 || revenue.LessThan(series.Min) {
			series.Min = revenue
		}
		if i == 0 || revenue.GreaterThan(series.Max) {
			series.Max = revenue
		}
	}

	return series
}
