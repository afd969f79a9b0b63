package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartPoint é um ponto (período, receita) de um gráfico
type ChartPoint struct {
	Period  time.Time       `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ChartSeries alimenta um gráfico. Min e Max definem a escala de cor.
type ChartSeries struct {
	Kind   string          `json:"kind"` // line | bar
	Points []ChartPoint    `json:"points"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
}

// Charts agrupa a tendência mensal e o gráfico anual do dashboard
type Charts struct {
	MonthlyTrend  ChartSeries `json:"monthly_trend"`
	YearlyRevenue ChartSeries `json:"yearly_revenue"`
}

// Dashboard é a visão completa consumida pela camada de apresentação
type Dashboard struct {
	Summary SummaryMetrics  `json:"summary"`
	Charts  Charts          `json:"charts"`
	Monthly []MonthlyRecord `json:"monthly"`
	Yearly  []YearlyRecord  `json:"yearly"`
	LoadID  string          `json:"load_id"`
}
