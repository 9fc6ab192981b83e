package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/api"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/scheduler"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	saleRepo := repository.NewSaleRepository(pgConn)
	inventoryRepo := repository.NewInventoryRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)

	dashboardService := dashboarding.NewService(saleRepo, inventoryRepo, customerRepo, cfg)

	snapshotProbeService := scheduler.NewSnapshotProbeService(dashboardService, cfg)
	if err := snapshotProbeService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de verificação do painel")
	} else {
		logrus.Info("Agendador de verificação do painel iniciado com sucesso")
	}

	server, err := api.New(cfg, dashboardService, snapshotProbeService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn abre o pool de conexões. Se o banco estiver fora, o painel segue servindo o fallback.
func pgconn(ctx context.Context, dbConfig config.Database) postgres.Conn {
	conn, err := postgres.Open(dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar conexão com PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("PostgreSQL indisponível, o painel usará dados de fallback até a conexão voltar")
		return conn
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
