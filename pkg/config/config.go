package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends de persistencia de compras.
const (
	StorePostgres = "postgres" // tabla JSONB propia
	StoreREST     = "rest"     // API de documentos externa /api/{database}/compras
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	DocAPI  DocAPIConfig
	Compras ComprasConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// JWTConfig configuración de JWT. Secret vacío deja las rutas sin proteger (solo desarrollo).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DocAPIConfig cliente de la API de documentos genérica.
type DocAPIConfig struct {
	BaseURL      string        // ej. https://backend.tienda.co
	Database     string        // segmento {database} de la ruta
	UpdateMethod string        // PATCH o PUT
	Token        string        // Bearer opcional
	Timeout      time.Duration
}

// ComprasConfig parámetros de la calculadora de compras.
type ComprasConfig struct {
	Store             string // postgres | rest
	Database          string // nombre lógico de la colección en postgres
	DefaultSequenceID int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DOCAPI_BASE_URL, COMPRAS_STORE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "compras-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "compras-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		DocAPI: DocAPIConfig{
			BaseURL:      strings.TrimRight(getString(v, "DOCAPI_BASE_URL", "http://localhost:3000"), "/"),
			Database:     getString(v, "DOCAPI_DATABASE", "tienda"),
			UpdateMethod: strings.ToUpper(getString(v, "DOCAPI_UPDATE_METHOD", "PATCH")),
			Token:        getString(v, "DOCAPI_TOKEN", ""),
			Timeout:      getDuration(v, "DOCAPI_TIMEOUT", 15*time.Second),
		},
		Compras: ComprasConfig{
			Store:             strings.ToLower(getString(v, "COMPRAS_STORE", StorePostgres)),
			Database:          getString(v, "COMPRAS_DATABASE", "tienda"),
			DefaultSequenceID: getInt(v, "COMPRAS_DEFAULT_SEQUENCE_ID", 100),
		},
	}

	if cfg.DocAPI.UpdateMethod != "PATCH" && cfg.DocAPI.UpdateMethod != "PUT" {
		return nil, fmt.Errorf("DOCAPI_UPDATE_METHOD inválido: %q (PATCH o PUT)", cfg.DocAPI.UpdateMethod)
	}
	if cfg.Compras.Store != StorePostgres && cfg.Compras.Store != StoreREST {
		return nil, fmt.Errorf("COMPRAS_STORE inválido: %q (postgres o rest)", cfg.Compras.Store)
	}
	return cfg, nil
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

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		d := v.GetDuration(key)
		if d > 0 {
			return d
		}
	}
	return def
}
