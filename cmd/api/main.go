package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/revenue-dashboard-api/infrastructure/source/csvfile"
	"github.com/vfg2006/revenue-dashboard-api/internal/api"
	"github.com/vfg2006/revenue-dashboard-api/internal/config"
	"github.com/vfg2006/revenue-dashboard-api/internal/observability/metrics"
	"github.com/vfg2006/revenue-dashboard-api/internal/scheduler"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
	"github.com/vfg2006/revenue-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monthlySource, yearlySource, closeSources := tableSources(ctx, cfg)
	defer closeSources()

	pipeline := revenue.NewService(monthlySource, yearlySource).
		WithMetrics(metrics.NewPipelineMetrics(prometheus.DefaultRegisterer))

	// Carga inicial: falhas aqui não impedem o servidor de subir, o erro volta nas requisições
	if _, _, err := pipeline.Load(ctx); err != nil {
		logrus.WithError(err).Warn("Carga inicial das tabelas de receita falhou")
	}

	reloadService := scheduler.NewReloadService(pipeline, cfg)
	if err := reloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do cache")
	} else {
		logrus.Info("Agendador de recarga do cache iniciado com sucesso")
	}

	server, err := api.New(cfg, pipeline, reloadService, prometheus.DefaultGatherer)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// tableSources escolhe as fontes mensal e anual conforme SOURCE_DRIVER
func tableSources(ctx context.Context, cfg *config.Config) (revenue.TableSource, revenue.TableSource, func()) {
	switch cfg.Source.Driver {
	case config.SourceDriverPostgres:
		conn := pgconn(ctx, cfg.Database)
		logrus.WithFields(logrus.Fields{
			"monthly_table": cfg.Source.MonthlyTable,
			"yearly_table":  cfg.Source.YearlyTable,
		}).Info("Usando tabelas do PostgreSQL como fonte de receita")

		return repository.NewRevenueTableSource(conn, cfg.Source.MonthlyTable),
			repository.NewRevenueTableSource(conn, cfg.Source.YearlyTable),
			func() { conn.Close() }
	default:
		monthly := csvfile.New(cfg.Source.MonthlyPath)
		yearly := csvfile.New(cfg.Source.YearlyPath)
		logrus.WithFields(logrus.Fields{
			"monthly_path": monthly.Path(),
			"yearly_path":  yearly.Path(),
		}).Info("Usando arquivos CSV como fonte de receita")

		return monthly, yearly, func() {}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
