// Package scheduler contém os serviços de agendamento para recarga de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-dashboard-api/internal/config"
	"github.com/vfg2006/revenue-dashboard-api/internal/domain"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
)

// CacheWarmer é o subconjunto do pipeline usado pela recarga
type CacheWarmer interface {
	Load(ctx context.Context) (*domain.MonthlyDataset, *domain.YearlyDataset, error)
	Invalidate()
	CacheStatus() revenue.CacheStatus
}

type ReloadConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ReloadService descarta e reaquece periodicamente o cache de receita
type ReloadService struct {
	scheduler           *gocron.Scheduler
	pipeline            CacheWarmer
	config              ReloadConfig
	timeout             time.Duration
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           error
	lastLoadID          string
}

func NewReloadService(pipeline CacheWarmer, cfg *config.Config) *ReloadService {
	reloadConfig := ReloadConfig{
		CronSchedule: cfg.Reload.CronSchedule,
		SyncEnabled:  cfg.Reload.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"enabled":       reloadConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga carregada")

	return &ReloadService{
		scheduler: gocron.NewScheduler(time.UTC),
		pipeline:  pipeline,
		config:    reloadConfig,
		timeout:   2 * time.Minute,
	}
}

func (s *ReloadService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de recarga do cache desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recarga do cache")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Reload(ctx); err != nil {
			logrus.WithError(err).Error("Erro na recarga agendada do cache")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recarga do cache")
		s.scheduler.Stop()
	}()

	return nil
}

// Reload invalida o cache e carrega as duas tabelas novamente.
// Uma chamada feita enquanto outra recarga está em andamento é ignorada.
func (s *ReloadService) Reload(ctx context.Context) error {
	if !s.tryAcquire() {
		logrus.Warn("Recarga do cache já está em execução")
		return nil
	}

	return s.runReload(ctx)
}

// TriggerManualSync dispara uma recarga em segundo plano. Retorna false se já houver uma em andamento.
func (s *ReloadService) TriggerManualSync() bool {
	if !s.tryAcquire() {
		logrus.Info("Recarga do cache já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando recarga manual do cache")
	go func() {
		if err := s.runReload(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na recarga manual do cache")
		}
	}()

	return true
}

// tryAcquire marca a recarga como em andamento; false se já houver uma
func (s *ReloadService) tryAcquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

// runReload executa a recarga; o chamador já adquiriu syncRunning
func (s *ReloadService) runReload(ctx context.Context) error {
	logrus.Info("Iniciando recarga do cache de receita")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.pipeline.Invalidate()
	monthly, _, err := s.pipeline.Load(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = err

	if err != nil {
		return fmt.Errorf("erro ao recarregar cache de receita: %w", err)
	}

	s.lastLoadID = monthly.LoadID
	logrus.WithField("load_id", monthly.LoadID).Info("Recarga do cache de receita concluída")

	return nil
}

// IsRunning informa se há uma recarga em andamento
func (s *ReloadService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador e do cache
func (s *ReloadService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_load_id":           s.lastLoadID,
		"cache":                  s.pipeline.CacheStatus(),
	}

	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
		status["last_error_code"] = revenue.ErrorCode(s.lastError)
	}

	return status
}
