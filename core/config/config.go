package config

import (
	"fmt"
	"strings"
	"sync"

	"scheduling-gateway/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Server ServerConfig
		Log    LogConfig
		CORS   CORSConfig
		Redis  RedisConfig
		Acuity AcuityConfig
		Static StaticConfig
		Admin  AdminConfig
	}

	ServerConfig struct {
		Host string
		Port int
	}

	LogConfig struct {
		Level  string
		Format string // "console" or "json"
	}

	CORSConfig struct {
		AllowedOrigins []string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	// AcuityConfig carries the provider base URL and one credential pair per
	// account. Either pair may be absent; calls against that account then
	// fail fast without touching the network.
	AcuityConfig struct {
		BaseURL string
		Main    Credentials
		Parents Credentials
	}

	Credentials struct {
		UserID string
		APIKey string
	}

	// StaticConfig locates the two configuration documents. When Bucket is
	// set they are read from S3; otherwise from the local paths.
	StaticConfig struct {
		CityTypesPath string
		LocationsPath string
		Bucket        string
		Region        string
		AccessKey     string
		SecretKey     string
		CityTypesKey  string
		LocationsKey  string
	}

	AdminConfig struct {
		JWTSecret string
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present), environment variables, and an optional
// config.yaml, in that precedence order (env wins).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("acuity.base_url", "https://acuityscheduling.com/api/v1")
	v.SetDefault("static.city_types_path", "config/city-types.json")
	v.SetDefault("static.locations_path", "config/locations.json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Acuity: AcuityConfig{
			BaseURL: v.GetString("acuity.base_url"),
			Main: Credentials{
				UserID: v.GetString("acuity.main.user_id"),
				APIKey: v.GetString("acuity.main.api_key"),
			},
			Parents: Credentials{
				UserID: v.GetString("acuity.parents.user_id"),
				APIKey: v.GetString("acuity.parents.api_key"),
			},
		},
		Static: StaticConfig{
			CityTypesPath: v.GetString("static.city_types_path"),
			LocationsPath: v.GetString("static.locations_path"),
			Bucket:        v.GetString("static.s3.bucket"),
			Region:        v.GetString("static.s3.region"),
			AccessKey:     v.GetString("static.s3.access_key"),
			SecretKey:     v.GetString("static.s3.secret_key"),
			CityTypesKey:  v.GetString("static.s3.city_types_key"),
			LocationsKey:  v.GetString("static.s3.locations_key"),
		},
		Admin: AdminConfig{
			JWTSecret: v.GetString("admin.jwt_secret"),
		},
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	mu.Lock()
	instance = cfg
	mu.Unlock()

	logger.Info("Config:Loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"redis", cfg.Redis.Addr != "",
		"s3", cfg.Static.Bucket != "")
	return cfg, nil
}

// Get returns the loaded config. Panics if Load was never called; use
// GetSafe in paths that can run before initialization.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set replaces the process config. Test helper.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
