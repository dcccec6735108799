package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the pipeline.
const EnvPrefix = "QUICKCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	Data     DataConfig
	Generate GenerateConfig
	Report   ReportConfig
	Export   ExportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUICKCART_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"QUICKCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUICKCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"QUICKCART_SERVICE_KIND" default:"generate"`
}

// DataConfig locates the delimited-table artifacts shared by all stages.
type DataConfig struct {
	Dir string `envconfig:"QUICKCART_DATA_DIR" default:"data"`
}

// GenerateConfig carries the runtime knobs of the generator stage. The
// statistical surface (cities, categories, weight tables) lives with the
// generator itself; only the scale and the seed are environment-tunable.
type GenerateConfig struct {
	Seed      uint64 `envconfig:"QUICKCART_GENERATE_SEED" default:"42"`
	Orders    int    `envconfig:"QUICKCART_GENERATE_ORDERS" default:"50000"`
	Customers int    `envconfig:"QUICKCART_GENERATE_CUSTOMERS" default:"15000"`
	Products  int    `envconfig:"QUICKCART_GENERATE_PRODUCTS" default:"500"`
}

type ReportConfig struct {
	Path      string `envconfig:"QUICKCART_REPORT_PATH" default:"Management_Report.xlsx"`
	ChartsDir string `envconfig:"QUICKCART_REPORT_CHARTS_DIR" default:"charts"`
}

// ExportConfig enables the optional SQLite sink for the generated tables.
// An empty path disables the export.
type ExportConfig struct {
	SQLitePath string `envconfig:"QUICKCART_EXPORT_SQLITE_PATH" default:""`
}

func (e ExportConfig) Enabled() bool {
	return strings.TrimSpace(e.SQLitePath) != ""
}
