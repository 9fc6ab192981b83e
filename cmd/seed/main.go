package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/seeding"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "semente do gerador aleatório")
	printSnapshot := flag.Bool("print", false, "imprime o snapshot calculado após o seed")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx := context.Background()

	var conn postgres.Conn
	conn, err = postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema")
	}

	logrus.WithField("seed", *seed).Info("Gerando dados de exemplo")

	dataset := seeding.Generate(rand.New(rand.NewSource(*seed)), time.Now(), seeding.Options{
		Sales:     cfg.Seed.Sales,
		Customers: cfg.Seed.Customers,
		SalesDays: cfg.Seed.SalesDays,
	})

	if err := seeding.NewSeeder(conn, seeding.NewRepositories).Seed(ctx, dataset); err != nil {
		logrus.WithError(err).Fatal("Erro ao popular o banco")
	}

	if !*printSnapshot {
		return
	}

	dashboardService := dashboarding.NewService(
		repository.NewSaleRepository(conn),
		repository.NewInventoryRepository(conn),
		repository.NewCustomerRepository(conn),
		cfg,
	)

	snapshot, err := dashboardService.ComputeSnapshot(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao calcular o snapshot")
	}

	out, err := utils.PrettyJson(snapshot)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao serializar o snapshot")
	}

	fmt.Println(out)
}
