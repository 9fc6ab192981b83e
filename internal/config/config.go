package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// TrendBucketTimestamp agrupa as vendas pelo valor bruto da data (comportamento de referência)
	TrendBucketTimestamp = "timestamp"
	// TrendBucketDay agrupa as vendas pelo dia do calendário
	TrendBucketDay = "day"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Dashboard     Dashboard     `mapstructure:",squash"`
	Cors          Cors          `mapstructure:",squash"`
	SnapshotProbe SnapshotProbe `mapstructure:",squash"`
	Seed          Seed          `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Dashboard agrupa os parâmetros do cálculo do snapshot
type Dashboard struct {
	TrendDays        int           `mapstructure:"dashboard_trend_days"`
	RecentSalesLimit int           `mapstructure:"dashboard_recent_sales_limit"`
	TrendBucket      string        `mapstructure:"dashboard_trend_bucket"`
	QueryTimeout     time.Duration `mapstructure:"dashboard_query_timeout"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type SnapshotProbe struct {
	CronSchedule string `mapstructure:"snapshot_probe_cron"`
	Enabled      bool   `mapstructure:"snapshot_probe_enabled"`
}

type Seed struct {
	Sales     int `mapstructure:"seed_sales"`
	Customers int `mapstructure:"seed_customers"`
	SalesDays int `mapstructure:"seed_sales_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	// Janela fixa de 7 dias e as 10 vendas mais recentes
	viper.SetDefault("DASHBOARD_TREND_DAYS", 7)
	viper.SetDefault("DASHBOARD_RECENT_SALES_LIMIT", 10)
	viper.SetDefault("DASHBOARD_TREND_BUCKET", TrendBucketTimestamp)
	viper.SetDefault("DASHBOARD_QUERY_TIMEOUT", "5s")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("SNAPSHOT_PROBE_CRON", "* * * * *") // A cada minuto
	viper.SetDefault("SNAPSHOT_PROBE_ENABLED", false)

	viper.SetDefault("SEED_SALES", 50)
	viper.SetDefault("SEED_CUSTOMERS", 100)
	viper.SetDefault("SEED_SALES_DAYS", 30)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Dashboard.TrendBucket {
	case TrendBucketTimestamp, TrendBucketDay:
	default:
		return fmt.Errorf("DASHBOARD_TREND_BUCKET inválido: %q (use %q ou %q)",
			c.Dashboard.TrendBucket, TrendBucketTimestamp, TrendBucketDay)
	}

	if c.Dashboard.TrendDays <= 0 {
		return fmt.Errorf("DASHBOARD_TREND_DAYS deve ser positivo: %d", c.Dashboard.TrendDays)
	}

	if c.Dashboard.RecentSalesLimit <= 0 {
		return fmt.Errorf("DASHBOARD_RECENT_SALES_LIMIT deve ser positivo: %d", c.Dashboard.RecentSalesLimit)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
