package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	JWT     JWTConfig
	Session SessionConfig
	Display DisplayConfig
	CLI     CLIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// AuthConfig servicio externo de autenticación (POST /api/login).
// Con StubEnabled el propio servidor expone un /api/login de desarrollo.
type AuthConfig struct {
	APIURL      string
	Timeout     time.Duration
	StubEnabled bool
	StubUsers   string // "usuario:clave:rol,..." vacío = usuarios semilla
	// VerifyTokens exige firma y expiración válidas (JWT_SECRET) en las rutas protegidas.
	VerifyTokens bool
}

// JWTConfig configuración de los tokens emitidos por el stub.
type JWTConfig struct {
	Secret          string
	Issuer          string
	Expiration      int // minutos
	RememberMinutes int // minutos cuando el usuario marca "recordarme"
}

// SessionConfig navegación tras el login y cookie del token.
type SessionConfig struct {
	LandingPath   string
	RedirectDelay time.Duration
	RememberFor   time.Duration
	CookieSecure  bool
}

// DisplayConfig presentación de números en pantalla.
type DisplayConfig struct {
	Locale       string
	PriceUnit    string
	QuantityUnit string
}

// CLIConfig opciones del binario avgcalc.
type CLIConfig struct {
	TokenFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, AUTH_API_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := getInt(v, "HTTP_PORT", 8080)
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "promedio-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: port,
		},
		Auth: AuthConfig{
			APIURL:       getString(v, "AUTH_API_URL", fmt.Sprintf("http://127.0.0.1:%d", port)),
			Timeout:      time.Duration(getInt(v, "AUTH_TIMEOUT_SECONDS", 10)) * time.Second,
			StubEnabled:  getBool(v, "AUTH_STUB_ENABLED", true),
			StubUsers:    getString(v, "AUTH_STUB_USERS", ""),
			VerifyTokens: getBool(v, "AUTH_VERIFY_TOKENS", false),
		},
		JWT: JWTConfig{
			Secret:          getString(v, "JWT_SECRET", ""),
			Issuer:          getString(v, "JWT_ISSUER", "promedio-api"),
			Expiration:      getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			RememberMinutes: getInt(v, "JWT_REMEMBER_MINUTES", 60*24*30),
		},
		Session: SessionConfig{
			LandingPath:   getString(v, "LOGIN_LANDING_PATH", "/calculator"),
			RedirectDelay: time.Duration(getInt(v, "LOGIN_REDIRECT_DELAY_MS", 1000)) * time.Millisecond,
			RememberFor:   time.Duration(getInt(v, "COOKIE_REMEMBER_DAYS", 30)) * 24 * time.Hour,
			CookieSecure:  getBool(v, "COOKIE_SECURE", false),
		},
		Display: DisplayConfig{
			Locale:       getString(v, "APP_LOCALE", "ko-KR"),
			PriceUnit:    getString(v, "PRICE_UNIT", "원"),
			QuantityUnit: getString(v, "QUANTITY_UNIT", "주"),
		},
		CLI: CLIConfig{
			TokenFile: getString(v, "TOKEN_FILE", defaultTokenFile()),
		},
	}

	if (cfg.Auth.StubEnabled || cfg.Auth.VerifyTokens) && cfg.JWT.Secret == "" {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("config: JWT_SECRET es obligatorio con AUTH_STUB_ENABLED o AUTH_VERIFY_TOKENS en production")
		}
		cfg.JWT.Secret = "dev-secret-change-me"
	}
	if cfg.Session.RedirectDelay < 0 {
		cfg.Session.RedirectDelay = 0
	}

	return cfg, nil
}

// defaultTokenFile ruta del almacén durable del token para la CLI.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "avgcalc", "token.yaml")
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
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
