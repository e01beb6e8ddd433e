package configs

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Postgres `mapstructure:"postgres"`
	Google   `mapstructure:"google"`
	Gemini   `mapstructure:"gemini"`
	Session  `mapstructure:"session"`
	Sync     `mapstructure:"sync"`
	Log      `mapstructure:"log"`
}

// App struct
type App struct {
	Debug          bool   `mapstructure:"debug"`
	Env            string `mapstructure:"env"`
	Port           string `mapstructure:"port"`
	FrontendURL    string `mapstructure:"frontend_url"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Google struct - OAuth client used for Drive access
type Google struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	StateSecret  string `mapstructure:"state_secret"`
}

// Gemini struct
type Gemini struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// Session struct
type Session struct {
	Driver        string        `mapstructure:"driver"` // postgres or memory
	TTL           time.Duration `mapstructure:"ttl"`    // 0 keeps sessions forever
	MaxTurns      int           `mapstructure:"max_turns"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// Sync struct - ingestion polling and tree walking limits
type Sync struct {
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	PollMaxInterval time.Duration `mapstructure:"poll_max_interval"`
	PollTimeout     time.Duration `mapstructure:"poll_timeout"`
	MaxDepth        int           `mapstructure:"max_depth"`
}

// Log struct
type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	Dir   string `mapstructure:"dir"` // rotate files here when set
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func setDefaults(env string) {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", env)
	viper.SetDefault("app.port", "8000")
	viper.SetDefault("app.frontend_url", "http://localhost:5173")
	viper.SetDefault("app.allowed_origins", "http://localhost:5173")

	viper.SetDefault("postgres.host", "")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)

	viper.SetDefault("google.client_id", "")
	viper.SetDefault("google.client_secret", "")
	viper.SetDefault("google.redirect_url", "http://localhost:8000/rest/oauth2-credential/callback")
	viper.SetDefault("google.state_secret", "")

	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timeout", 120)

	viper.SetDefault("session.driver", "postgres")
	viper.SetDefault("session.ttl", "0s")
	viper.SetDefault("session.max_turns", 0)
	viper.SetDefault("session.purge_interval", "1h")

	viper.SetDefault("sync.poll_interval", "1s")
	viper.SetDefault("sync.poll_max_interval", "10s")
	viper.SetDefault("sync.poll_timeout", "10m")
	viper.SetDefault("sync.max_depth", 32)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
	viper.SetDefault("log.dir", "")
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(env)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		log.Println("No config file found, using defaults and environment")
	case err != nil:
		panic(err)
	default:
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Println("Config file has changed: ", e.Name)
		})
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
