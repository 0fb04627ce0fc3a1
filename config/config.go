package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const devJWTSecret = "clave_secreta_solo_para_desarrollo"

type Config struct {
	Port        string        `mapstructure:"PORT"`
	Environment string        `mapstructure:"ENVIRONMENT"`
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32         `mapstructure:"DB_MIN_CONNS"`
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	TokenTTL    time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	CORSOrigins string        `mapstructure:"CORS_ORIGINS"`
	BodyLimit   int           `mapstructure:"BODY_LIMIT"`
}

var keys = []string{
	"PORT", "ENVIRONMENT", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "CORS_ORIGINS", "BODY_LIMIT",
}

// Load lee el archivo .env (si existe) y las variables de entorno
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no se pudo cargar el archivo .env, se usan sólo variables de entorno")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_MAX_CONNS", 30)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("BODY_LIMIT", 1024*1024)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// IsDev indica si el logger usa salida de consola
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

// IsProduction indica si el servidor corre en producción
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate revisa que la configuración sea segura para arrancar. En
// producción se exige un JWT_SECRET propio de al menos 32 caracteres.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.JWTSecret == "" || c.JWTSecret == devJWTSecret {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.JWTSecret))
		}
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("TOKEN_TTL must not be negative")
	}
	return nil
}

// AllowedOrigins devuelve CORS_ORIGINS normalizado para el middleware cors
func (c *Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}
