package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Drivers de fonte de dados suportados
const (
	SourceDriverCSV      = "csv"
	SourceDriverPostgres = "postgres"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Source   Source   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Reload   Reload   `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Source define de onde vêm as tabelas mensal e anual
type Source struct {
	Driver       string `mapstructure:"source_driver"`
	MonthlyPath  string `mapstructure:"monthly_revenue_path"`
	YearlyPath   string `mapstructure:"yearly_revenue_path"`
	MonthlyTable string `mapstructure:"monthly_revenue_table"`
	YearlyTable  string `mapstructure:"yearly_revenue_table"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

// Reload configura a recarga agendada do cache de receita
type Reload struct {
	CronSchedule string `mapstructure:"reload_cron"`
	Enabled      bool   `mapstructure:"reload_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("SOURCE_DRIVER", SourceDriverCSV)
	viper.SetDefault("MONTHLY_REVENUE_PATH", "monthly_revenue.csv")
	viper.SetDefault("YEARLY_REVENUE_PATH", "yearly_revenue.csv")
	viper.SetDefault("MONTHLY_REVENUE_TABLE", "monthly_revenue")
	viper.SetDefault("YEARLY_REVENUE_TABLE", "yearly_revenue")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/revenue?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 4)

	viper.SetDefault("RELOAD_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("RELOAD_ENABLED", false)       // Sem recarga automática: apenas manual

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
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

// Validate verifica se a combinação de fonte e caminhos/tabelas é utilizável
func (c *Config) Validate() error {
	c.Source.Driver = strings.ToLower(strings.TrimSpace(c.Source.Driver))

	switch c.Source.Driver {
	case SourceDriverCSV:
		if c.Source.MonthlyPath == "" || c.Source.YearlyPath == "" {
			return fmt.Errorf("config: MONTHLY_REVENUE_PATH e YEARLY_REVENUE_PATH são obrigatórios para a fonte csv")
		}
	case SourceDriverPostgres:
		if c.Source.MonthlyTable == "" || c.Source.YearlyTable == "" {
			return fmt.Errorf("config: MONTHLY_REVENUE_TABLE e YEARLY_REVENUE_TABLE são obrigatórios para a fonte postgres")
		}
	default:
		return fmt.Errorf("config: SOURCE_DRIVER inválido: %q (use csv ou postgres)", c.Source.Driver)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
