package revenue

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-dashboard-api/internal/domain"
	"github.com/vfg2006/revenue-dashboard-api/internal/observability/metrics"
	"github.com/vfg2006/revenue-dashboard-api/pkg/utils"
)

// Nomes das tabelas usados no cache, nos logs e nas métricas
const (
	TableMonthly = "monthly"
	TableYearly  = "yearly"
)

const (
	// Limite da leitura compartilhada, independente do contexto de quem a iniciou
	sharedReadTimeout = time.Minute
	maxReadAttempts   = 3
)

// Pipeline é o contrato consumido pela camada de apresentação
type Pipeline interface {
	// Load carrega as duas tabelas, reaproveitando o cache enquanto as fontes não mudarem
	Load(ctx context.Context) (*domain.MonthlyDataset, *domain.YearlyDataset, error)

	// Summarize calcula os KPIs da tabela mensal
	Summarize(monthly *domain.MonthlyDataset) (domain.SummaryMetrics, error)

	// Charts monta as séries dos gráficos mensal (linha) e anual (barras)
	Charts(monthly *domain.MonthlyDataset, yearly *domain.YearlyDataset) domain.Charts

	// Invalidate descarta o cache; a próxima carga relê as fontes
	Invalidate()

	// CacheStatus retorna o estado atual do cache
	CacheStatus() CacheStatus
}

// Service implementa o Pipeline sobre duas fontes tabulares
type Service struct {
	monthlySource TableSource
	yearlySource  TableSource
	cache         *loadCache
	metrics       *metrics.PipelineMetrics
	now           func() time.Time
}

// NewService cria uma nova instância do pipeline. Cada instância tem seu próprio cache.
func NewService(monthlySource, yearlySource TableSource) *Service {
	return &Service{
		monthlySource: monthlySource,
		yearlySource:  yearlySource,
		cache:         newLoadCache(),
		now:           time.Now,
	}
}

// WithMetrics habilita o registro de métricas do pipeline
func (s *Service) WithMetrics(m *metrics.PipelineMetrics) *Service {
	s.metrics = m
	return s
}

// Load carrega as tabelas mensal e anual. Se qualquer uma falhar, nenhuma é retornada.
func (s *Service) Load(ctx context.Context) (*domain.MonthlyDataset, *domain.YearlyDataset, error) {
	monthly, err := loadTable(ctx, s, TableMonthly, s.monthlySource, monthlySchema)
	if err != nil {
		return nil, nil, err
	}

	yearly, err := loadTable(ctx, s, TableYearly, s.yearlySource, yearlySchema)
	if err != nil {
		return nil, nil, err
	}

	return monthly, yearly, nil
}

// loadTable devolve o dataset em cache para a identidade atual da fonte ou lê e converte a fonte
func loadTable[R domain.Record](
	ctx context.Context,
	s *Service,
	table string,
	source TableSource,
	schema tableSchema[R],
) (*domain.Dataset[R], error) {
	logger := logrus.WithField("table", table)

	identity, err := source.Fingerprint(ctx)
	if err != nil {
		s.metrics.ObserveLoad(table, metrics.LoadResultError)
		logger.WithError(err).Error("Erro ao identificar a fonte de dados")
		return nil, asLoadError(table, err)
	}

	key := identity.Key()
	value, generation, ok := s.cache.lookup(table, key)
	if ok {
		s.cache.hit()
		s.metrics.ObserveLoad(table, metrics.LoadResultHit)
		return value.(*domain.Dataset[R]), nil
	}

	value, err = s.cache.fill(generation, table, key, func() (any, string, error) {
		startedAt := time.Now()

		// A leitura é compartilhada por todos os chamadores da mesma carga:
		// o cancelamento do primeiro não pode derrubar os demais.
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()

		raw, current, stable, err := readStable(readCtx, source, identity)
		if err != nil {
			return nil, "", err
		}

		records, err := parseRecords(current.Name, raw, schema)
		if err != nil {
			return nil, "", err
		}

		loadID, err := utils.GenerateID()
		if err != nil {
			return nil, "", NewLoadError(current.Name, "erro ao gerar identificador da carga", err)
		}

		s.metrics.ObserveParse(table, time.Since(startedAt), len(records))
		logger.WithFields(logrus.Fields{
			"source":  current.Name,
			"version": current.Version,
			"records": len(records),
			"load_id": loadID,
			"stable":  stable,
		}).Info("Tabela carregada da fonte")

		dataset := domain.NewDataset(current.Name, current.Version, loadID, s.now(), records)
		if !stable {
			return dataset, "", nil
		}
		return dataset, current.Key(), nil
	})
	if err != nil {
		s.metrics.ObserveLoad(table, metrics.LoadResultError)
		logger.WithError(err).Error("Erro ao carregar tabela")
		return nil, err
	}

	s.metrics.ObserveLoad(table, metrics.LoadResultMiss)
	return value.(*domain.Dataset[R]), nil
}

// readStable lê a fonte e confere a identidade depois da leitura. Se a fonte mudou durante
// a leitura, lê de novo sob a nova identidade; stable=false quando ela não se estabiliza
// em maxReadAttempts, e nesse caso o resultado não deve ser memorizado.
func readStable(ctx context.Context, source TableSource, identity SourceIdentity) (*Table, SourceIdentity, bool, error) {
	for attempt := 1; ; attempt++ {
		raw, err := source.ReadTable(ctx)
		if err != nil {
			return nil, identity, false, asLoadError(identity.Name, err)
		}

		after, err := source.Fingerprint(ctx)
		if err != nil {
			return nil, identity, false, asLoadError(identity.Name, err)
		}

		if after.Key() == identity.Key() {
			return raw, identity, true, nil
		}

		logrus.WithFields(logrus.Fields{
			"source":      identity.Name,
			"version":     identity.Version,
			"new_version": after.Version,
			"attempt":     attempt,
		}).Warn("Fonte alterada durante a leitura")

		if attempt == maxReadAttempts {
			return raw, after, false, nil
		}
		identity = after
	}
}

// asLoadError garante que falhas de infraestrutura cheguem como ErrDataLoad
func asLoadError(source string, err error) error {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return err
	}
	return NewLoadError(source, "", err)
}

// Summarize calcula total, média, melhor mês e quantidade de meses.
// Em empate no maior valor, vale o primeiro registro na ordem da fonte.
func (s *Service) Summarize(monthly *domain.MonthlyDataset) (domain.SummaryMetrics, error) {
	return Summarize(monthly)
}

// Summarize é a versão sem estado usada pelo Service
func Summarize(monthly *domain.MonthlyDataset) (domain.SummaryMetrics, error) {
	records := monthly.Records()
	if len(records) == 0 {
		return domain.SummaryMetrics{}, ErrEmptyDataset
	}

	total := decimal.Zero
	best := records[0]
	for _, record := range records {
		total = total.Add(record.Revenue)
		if record.Revenue.GreaterThan(best.Revenue) {
			best = record
		}
	}

	count := len(records)
	return domain.SummaryMetrics{
		TotalRevenue:          total,
		AverageMonthlyRevenue: total.Div(decimal.NewFromInt(int64(count))),
		BestMonthRevenue:      best.Revenue,
		BestMonth:             best.Month,
		DataPointCount:        count,
	}, nil
}

// Invalidate descarta o cache de cargas
func (s *Service) Invalidate() {
	generation := s.cache.invalidate()
	s.metrics.ObserveInvalidation()
	logrus.WithField("generation", generation).Info("Cache de receita invalidado")
}

// CacheStatus retorna o estado atual do cache
func (s *Service) CacheStatus() CacheStatus {
	return s.cache.status()
}

// SortedMonthly retorna os meses ordenados pela data
func SortedMonthly(monthly *domain.MonthlyDataset, ascending bool) []domain.MonthlyRecord {
	return domain.SortedView(monthly, ascending)
}

// SortedYearly retorna os anos ordenados pela data
func SortedYearly(yearly *domain.YearlyDataset, ascending bool) []domain.YearlyRecord {
	return domain.SortedView(yearly, ascending)
}
