package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados (STORAGE_DRIVER).
const (
	DriverSheets   = "sheets"
	DriverXLSX     = "xlsx"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Storage StorageConfig
	DB      DBConfig
	Cache   CacheConfig
	Swagger SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona del establecimiento; define "hoy" y las fechas de venta
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	CORSOrigins  string
	CookieSecure bool // cookie auth_token solo por HTTPS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// StorageConfig dónde vive la planilha.
type StorageConfig struct {
	Driver          string
	SpreadsheetID   string
	CredentialsJSON string // JSON completo de la cuenta de servicio
	ClientEmail     string // alternativa al JSON: email + clave privada
	PrivateKey      string
	XLSXPath        string
}

// DBConfig configuración de PostgreSQL (driver postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// CacheConfig Redis para la caché del painel y el lock del checkout.
type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
	LockTTLSeconds      int
}

// SwaggerConfig Swagger UI (solo se monta si el archivo existe).
type SwaggerConfig struct {
	FilePath string
	Path     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pdv-planilha"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Sao_Paulo"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			CORSOrigins:  getString(v, "CORS_ORIGINS", "*"),
			CookieSecure: getBool(v, "COOKIE_SECURE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*12),
			Issuer:     getString(v, "JWT_ISSUER", "pdv-planilha"),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(getString(v, "STORAGE_DRIVER", DriverSheets)),
			SpreadsheetID:   getString(v, "SHEETS_SPREADSHEET_ID", ""),
			CredentialsJSON: getString(v, "GOOGLE_SERVICE_ACCOUNT_JSON", ""),
			ClientEmail:     getString(v, "GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
			PrivateKey:      getString(v, "GOOGLE_PRIVATE_KEY", ""),
			XLSXPath:        getString(v, "XLSX_PATH", "./data/planilha.xlsx"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pdv"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		Cache: CacheConfig{
			Enabled:             getBool(v, "CACHE_ENABLED", false),
			RedisURL:            getString(v, "REDIS_URL", ""),
			RedisHost:           getString(v, "REDIS_HOST", ""),
			RedisPort:           getString(v, "REDIS_PORT", ""),
			RedisPassword:       getString(v, "REDIS_PASSWORD", ""),
			RedisDB:             getInt(v, "REDIS_DB", 0),
			DashboardTTLSeconds: getInt(v, "CACHE_DASHBOARD_TTL_SECONDS", 60),
			LockTTLSeconds:      getInt(v, "CHECKOUT_LOCK_TTL_SECONDS", 15),
		},
		Swagger: SwaggerConfig{
			FilePath: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
			Path:     getString(v, "SWAGGER_PATH", "docs"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones obligatorias.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	switch c.Storage.Driver {
	case DriverSheets:
		if c.Storage.SpreadsheetID == "" {
			return fmt.Errorf("config: SHEETS_SPREADSHEET_ID es obligatorio con STORAGE_DRIVER=sheets")
		}
	case DriverXLSX:
		if c.Storage.XLSXPath == "" {
			return fmt.Errorf("config: XLSX_PATH es obligatorio con STORAGE_DRIVER=xlsx")
		}
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
