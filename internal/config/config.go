package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Dashboard        Dashboard        `mapstructure:",squash"`
	DashboardRefresh DashboardRefresh `mapstructure:",squash"`
	Theme            Theme            `mapstructure:",squash"`
	Cors             Cors             `mapstructure:",squash"`
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
	SSLMode  string `mapstructure:"database_sslmode"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret       string        `mapstructure:"auth_secret"`
	Password     string        `mapstructure:"auth_password"`
	PasswordHash string        `mapstructure:"auth_password_hash"`
	TokenTTL     time.Duration `mapstructure:"auth_token_ttl"`
}

type Dashboard struct {
	Alliance        string        `mapstructure:"dashboard_alliance"`
	Timezone        string        `mapstructure:"dashboard_timezone"`
	TopCities       int           `mapstructure:"dashboard_top_cities"`
	IsolationPolicy string        `mapstructure:"dashboard_isolation_policy"`
	CacheTTL        time.Duration `mapstructure:"dashboard_cache_ttl"`
}

type DashboardRefresh struct {
	CronSchedule string `mapstructure:"dashboard_refresh_cron"`
	Enabled      bool   `mapstructure:"dashboard_refresh_enabled"`
}

type Theme struct {
	PrimaryBlue   string   `mapstructure:"theme_primary_blue"`
	SecondaryBlue string   `mapstructure:"theme_secondary_blue"`
	LightBlue     string   `mapstructure:"theme_light_blue"`
	AccentGreen   string   `mapstructure:"theme_accent_green"`
	White         string   `mapstructure:"theme_white"`
	ChartColors   []string `mapstructure:"theme_chart_colors"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Location devolve o fuso usado para derivar as chaves de mês
func (d Dashboard) Location() (*time.Location, error) {
	if d.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(d.Timezone)
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/bivett")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_PASSWORD", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "1h") // Mesma duração do cookie de sessão

	viper.SetDefault("DASHBOARD_ALLIANCE", "bivett")
	viper.SetDefault("DASHBOARD_TIMEZONE", "America/Bogota")
	viper.SetDefault("DASHBOARD_TOP_CITIES", 10)
	viper.SetDefault("DASHBOARD_ISOLATION_POLICY", "skip") // skip ou abort
	viper.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	viper.SetDefault("DASHBOARD_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("DASHBOARD_REFRESH_ENABLED", false)

	viper.SetDefault("THEME_PRIMARY_BLUE", "#0033A0")
	viper.SetDefault("THEME_SECONDARY_BLUE", "#00215C")
	viper.SetDefault("THEME_LIGHT_BLUE", "#3366CC")
	viper.SetDefault("THEME_ACCENT_GREEN", "#C5D92D")
	viper.SetDefault("THEME_WHITE", "#FFFFFF")
	viper.SetDefault("THEME_CHART_COLORS", "#3366CC,#C5D92D,#0033A0,#FFFFFF,#8884d8,#ffc658")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Dashboard.IsolationPolicy) {
	case "skip", "abort":
		c.Dashboard.IsolationPolicy = strings.ToLower(c.Dashboard.IsolationPolicy)
	default:
		return fmt.Errorf("config: DASHBOARD_ISOLATION_POLICY inválida: %q (use skip ou abort)", c.Dashboard.IsolationPolicy)
	}

	if c.Dashboard.TopCities <= 0 {
		return fmt.Errorf("config: DASHBOARD_TOP_CITIES deve ser positivo: %d", c.Dashboard.TopCities)
	}

	if _, err := c.Dashboard.Location(); err != nil {
		return fmt.Errorf("config: DASHBOARD_TIMEZONE inválido: %w", err)
	}

	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		logrus.Warn("AUTH_PASSWORD e AUTH_PASSWORD_HASH vazios, nenhum login será aceito")
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

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
