// Package migration cria as tabelas usadas pelo painel
package migration

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
)

type step struct {
	name      string
	statement string
}

var steps = []step{
	{
		name: "create_sales",
		statement: `CREATE TABLE IF NOT EXISTS sales (
			id SERIAL PRIMARY KEY,
			date TIMESTAMPTZ NOT NULL DEFAULT now(),
			amount DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
			product TEXT NOT NULL
		)`,
	},
	{
		name:      "index_sales_date",
		statement: `CREATE INDEX IF NOT EXISTS sales_date_idx ON sales (date)`,
	},
	{
		name: "create_inventory",
		statement: `CREATE TABLE IF NOT EXISTS inventory (
			id SERIAL PRIMARY KEY,
			product TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0)
		)`,
	},
	{
		name: "create_customers",
		statement: `CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			retention_rate DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (retention_rate >= 0 AND retention_rate <= 100)
		)`,
	},
}

// Apply executa todos os passos em ordem. Os comandos são idempotentes.
func Apply(ctx context.Context, conn postgres.Queryer) error {
	startTime := time.Now()

	for i, s := range steps {
		if _, err := conn.ExecContext(ctx, s.statement); err != nil {
			return errors.Wrapf(err, "erro no passo de migração %s", s.name)
		}

		logrus.WithFields(logrus.Fields{
			"step":     s.name,
			"progress": i + 1,
			"total":    len(steps),
		}).Debug("Passo de migração aplicado")
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}
