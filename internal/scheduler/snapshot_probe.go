// Package scheduler contém os serviços de agendamento em background
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/dashboarding"
)

var errEmptySnapshot = errors.New("snapshot vazio retornado sem erro")

type SnapshotProbeConfig struct {
	CronSchedule string
	Enabled      bool
}

// SnapshotProbeService calcula o snapshot periodicamente para que falhas do banco
// apareçam nos logs mesmo quando o painel está servindo o fallback
type SnapshotProbeService struct {
	scheduler   *gocron.Scheduler
	dashboarder dashboarding.Dashboarder
	config      SnapshotProbeConfig

	mu               sync.Mutex
	running          bool
	lastStartedAt    time.Time
	lastCompletedAt  time.Time
	lastError        error
	consecutiveFails int
}

func NewSnapshotProbeService(dashboarder dashboarding.Dashboarder, cfg *config.Config) *SnapshotProbeService {
	probeConfig := SnapshotProbeConfig{
		CronSchedule: cfg.SnapshotProbe.CronSchedule,
		Enabled:      cfg.SnapshotProbe.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": probeConfig.CronSchedule,
		"enabled":       probeConfig.Enabled,
	}).Info("Configuração do agendador de verificação do painel carregada")

	return &SnapshotProbeService{
		scheduler:   gocron.NewScheduler(time.Local),
		dashboarder: dashboarder,
		config:      probeConfig,
	}
}

func (s *SnapshotProbeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Verificação periódica do painel desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunOnce(ctx); err != nil {
			logrus.WithError(err).Error("Erro na verificação periódica do painel")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar verificação do painel: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de verificação do painel")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce calcula um snapshot e registra os indicadores. Execuções sobrepostas são ignoradas.
func (s *SnapshotProbeService) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Warn("Verificação do painel já está em execução")
		return nil
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mu.Unlock()

	snapshot, err := s.dashboarder.ComputeSnapshot(ctx)
	if err == nil && snapshot == nil {
		err = errEmptySnapshot
	}

	s.mu.Lock()
	s.running = false
	s.lastCompletedAt = time.Now()
	s.lastError = err
	if err != nil {
		s.consecutiveFails++
	} else {
		s.consecutiveFails = 0
	}
	fails := s.consecutiveFails
	s.mu.Unlock()

	if err != nil {
		logrus.WithError(err).WithField("consecutive_failures", fails).
			Warn("Banco indisponível, o painel está servindo dados de fallback")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"total_sales":        snapshot.SalesData.TotalSales,
		"inventory_turnover": snapshot.InventoryData.InventoryTurnover,
		"out_of_stock":       snapshot.InventoryData.OutOfStock,
		"active_customers":   snapshot.CustomerData.ActiveCustomers,
		"retention_rate":     snapshot.CustomerData.RetentionRate,
	}).Info("Verificação do painel concluída")

	return nil
}

// TriggerManualRun inicia uma verificação em background
func (s *SnapshotProbeService) TriggerManualRun() bool {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if running {
		logrus.Info("Verificação do painel já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando verificação manual do painel")
	go func() {
		_ = s.RunOnce(context.Background())
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotProbeService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	lastError := ""
	if s.lastError != nil {
		lastError = s.lastError.Error()
	}

	return map[string]any{
		"enabled":              s.config.Enabled,
		"cron":                 s.config.CronSchedule,
		"running":              s.running,
		"last_started_at":      s.lastStartedAt,
		"last_completed_at":    s.lastCompletedAt,
		"last_error":           lastError,
		"consecutive_failures": s.consecutiveFails,
	}
}
