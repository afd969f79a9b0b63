package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-dashboard-api/internal/domain"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
	"github.com/vfg2006/revenue-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Ordenações aceitas no parâmetro "order"
const (
	OrderAsc    = "asc"
	OrderDesc   = "desc"
	OrderSource = "source"
)

// parseOrder lê o parâmetro "order"; vazio equivale a desc
func parseOrder(r *http.Request) (string, bool) {
	order := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("order")))
	switch order {
	case "":
		return OrderDesc, true
	case OrderAsc, OrderDesc, OrderSource:
		return order, true
	}
	return "", false
}

func orderedRecords[R domain.Record](d *domain.Dataset[R], order string) []R {
	if order == OrderSource {
		return d.Records()
	}
	return domain.SortedView(d, order == OrderAsc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Erro ao serializar resposta")
	}
}

// writePipelineError responde com o código do erro do pipeline e registra o erro completo.
// O cliente recebe só a mensagem fixa do código e a posição da célula.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	code := revenue.ErrorCode(err)
	if code == "" {
		code = apiErrors.ErrInternalServer
	}

	log.ForContext(r.Context()).WithError(err).WithField("error_code", code).Warn("Falha no pipeline de receita")
	apiErr := apiErrors.FromError(err, code)
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, pipelineErrorDetails(err))
}

// pipelineErrorDetails extrai a fonte (sem diretório), a linha e a coluna de um PipelineError
func pipelineErrorDetails(err error) any {
	var pipelineErr *revenue.PipelineError
	if !errors.As(err, &pipelineErr) {
		return nil
	}

	details := map[string]any{}
	if pipelineErr.Source != "" {
		details["source"] = filepath.Base(pipelineErr.Source)
	}
	if pipelineErr.Row > 0 {
		details["row"] = pipelineErr.Row
	}
	if pipelineErr.Column != "" {
		details["column"] = pipelineErr.Column
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// GetRevenueSummary retorna os KPIs da tabela mensal
func GetRevenueSummary(pipeline revenue.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monthly, _, err := pipeline.Load(r.Context())
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		summary, err := pipeline.Summarize(monthly)
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// GetMonthlyRevenue retorna a tabela mensal na ordem pedida
func GetMonthlyRevenue(pipeline revenue.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := parseOrder(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro order inválido. Valores aceitos: asc, desc, source", nil)
			return
		}

		monthly, _, err := pipeline.Load(r.Context())
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"order":   order,
			"load_id": monthly.LoadID,
			"records": orderedRecords(monthly, order),
		})
	}
}

// GetYearlyRevenue retorna a tabela anual na ordem pedida
func GetYearlyRevenue(pipeline revenue.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := parseOrder(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro order inválido. Valores aceitos: asc, desc, source", nil)
			return
		}

		_, yearly, err := pipeline.Load(r.Context())
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"order":   order,
			"load_id": yearly.LoadID,
			"records": orderedRecords(yearly, order),
		})
	}
}

// GetRevenueCharts retorna as séries dos gráficos
func GetRevenueCharts(pipeline revenue.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monthly, yearly, err := pipeline.Load(r.Context())
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, pipeline.Charts(monthly, yearly))
	}
}

// GetDashboard monta a página completa: KPIs, gráficos e as duas tabelas em ordem decrescente
func GetDashboard(pipeline revenue.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monthly, yearly, err := pipeline.Load(r.Context())
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		summary, err := pipeline.Summarize(monthly)
		if err != nil {
			writePipelineError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.Dashboard{
			Summary: summary,
			Charts:  pipeline.Charts(monthly, yearly),
			Monthly: revenue.SortedMonthly(monthly, false),
			Yearly:  revenue.SortedYearly(yearly, false),
			LoadID:  monthly.LoadID,
		})
	}
}
