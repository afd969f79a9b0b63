package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/revenue-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Revenue(pipeline revenue.Pipeline) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/revenue/summary",
			Method:  http.MethodGet,
			Handler: GetRevenueSummary(pipeline),
		},
		{
			Path:    "/v1/revenue/monthly",
			Method:  http.MethodGet,
			Handler: GetMonthlyRevenue(pipeline),
		},
		{
			Path:    "/v1/revenue/yearly",
			Method:  http.MethodGet,
			Handler: GetYearlyRevenue(pipeline),
		},
		{
			Path:    "/v1/revenue/charts",
			Method:  http.MethodGet,
			Handler: GetRevenueCharts(pipeline),
		},
		{
			Path:    "/v1/revenue/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(pipeline),
		},
	}
}

func Cache(reloader CacheReloader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cache/reload",
			Method:  http.MethodPost,
			Handler: ReloadCache(reloader),
		},
		{
			Path:    "/v1/cache/status",
			Method:  http.MethodGet,
			Handler: GetCacheStatus(reloader),
		},
	}
}

func Metrics(gatherer prometheus.Gatherer) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		},
	}
}
