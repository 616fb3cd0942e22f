package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Content   ContentConfig   `mapstructure:"content"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Views     ViewsConfig     `mapstructure:"views"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Navigator NavigatorConfig `mapstructure:"navigator"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port       string `mapstructure:"port"`
	Mode       string `mapstructure:"mode"` // gin mode: debug|release|test
	ResumePath string `mapstructure:"resume_path"`
	ResumeName string `mapstructure:"resume_name"`
	Tracking   bool   `mapstructure:"tracking"`
}

// ContentConfig locates the posts. An empty PostsDir serves the embedded posts.
type ContentConfig struct {
	PostsDir string `mapstructure:"posts_dir"`
	Watch    bool   `mapstructure:"watch"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ViewsConfig selects the view counter backend.
type ViewsConfig struct {
	Backend   string        `mapstructure:"backend"` // sqlite|countapi|none
	URL       string        `mapstructure:"url"`
	Namespace string        `mapstructure:"namespace"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SMTPConfig holds contact form mail settings.
type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

// AdminConfig holds dashboard credentials.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// NavigatorConfig tunes the landing page section navigator.
type NavigatorConfig struct {
	SettleDelay    time.Duration `mapstructure:"settle_delay"`
	DebounceWindow time.Duration `mapstructure:"debounce_window"`
	Threshold      float64       `mapstructure:"threshold"`
	GuardEpsilon   float64       `mapstructure:"guard_epsilon"`
	NarrowColumns  int           `mapstructure:"narrow_columns"`
}

// LogConfig controls verbosity.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Backends accepted by views.backend.
const (
	BackendSQLite   = "sqlite"
	BackendCountAPI = "countapi"
	BackendNone     = "none"
)

// envNames keeps the deployment's existing bare variable names working.
var envNames = map[string]string{
	"server.port":    "PORT",
	"server.mode":    "GIN_MODE",
	"smtp.host":      "SMTP_HOST",
	"smtp.port":      "SMTP_PORT",
	"smtp.user":      "SMTP_USER",
	"smtp.pass":      "SMTP_PASS",
	"smtp.to":        "TO_EMAIL",
	"admin.username": "ADMIN_USERNAME",
	"admin.password": "ADMIN_PASSWORD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.resume_path", "static/resume.pdf")
	v.SetDefault("server.resume_name", "LirikR-Resume.pdf")
	v.SetDefault("server.tracking", true)

	v.SetDefault("content.posts_dir", "")
	v.SetDefault("content.watch", false)

	v.SetDefault("database.path", "data/folio.db")

	v.SetDefault("views.backend", BackendSQLite)
	v.SetDefault("views.url", "https://api.countapi.xyz")
	v.SetDefault("views.namespace", "lirikrexhepi-blog")
	v.SetDefault("views.timeout", 2*time.Second)

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "lirikrexhepi@gmail.com")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("navigator.settle_delay", time.Second)
	v.SetDefault("navigator.debounce_window", 100*time.Millisecond)
	v.SetDefault("navigator.threshold", 30)
	v.SetDefault("navigator.guard_epsilon", 5)
	v.SetDefault("navigator.narrow_columns", 100)

	v.SetDefault("log.verbose", false)
}

// Load reads .env, the optional config file and the environment.
// Env var overrides use prefix FOLIO_ (FOLIO_VIEWS_BACKEND, ...), and the
// bare names in envNames.
func Load(path string) (Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envNames {
		if err := v.BindEnv(key, "FOLIO_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail at first use.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: server.port is empty", ErrInvalid)
	}
	for _, r := range c.Server.Port {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: server.port %q is not a number", ErrInvalid, c.Server.Port)
		}
	}

	switch c.Views.Backend {
	case BackendSQLite, BackendCountAPI, BackendNone:
	default:
		return fmt.Errorf("%w: views.backend %q (must be one of: sqlite, countapi, none)", ErrInvalid, c.Views.Backend)
	}
	if c.Views.Backend == BackendSQLite && c.Database.Path == "" {
		return fmt.Errorf("%w: sqlite view backend needs database.path", ErrInvalid)
	}
	if c.Views.Backend == BackendCountAPI && (c.Views.URL == "" || c.Views.Namespace == "") {
		return fmt.Errorf("%w: countapi backend needs views.url and views.namespace", ErrInvalid)
	}
	if c.Views.Timeout <= 0 {
		return fmt.Errorf("%w: views.timeout must be positive", ErrInvalid)
	}

	n := c.Navigator
	if n.SettleDelay <= 0 || n.DebounceWindow <= 0 {
		return fmt.Errorf("%w: navigator delays must be positive", ErrInvalid)
	}
	if n.Threshold <= 0 {
		return fmt.Errorf("%w: navigator.threshold must be positive", ErrInvalid)
	}
	if n.GuardEpsilon < 0 {
		return fmt.Errorf("%w: navigator.guard_epsilon must not be negative", ErrInvalid)
	}
	return nil
}
