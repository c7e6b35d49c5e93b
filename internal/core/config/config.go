package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/viper"
)

type App struct {
	Name string
	Env  string
}

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

// Storage selects the blob backend: memory, redis or gorm.
type Storage struct {
	Driver    string
	KeyPrefix string
	Seed      bool
	Reset     bool // wipe and reseed at startup
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

// Ops is the health and metrics listener.
type Ops struct {
	Enable          bool
	Host            string
	Port            int
	RPS             float64
	Burst           int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type Views struct {
	DueSoonDays int
	RecentLimit int
}

type Config struct {
	App     App
	Log     Log
	Storage Storage
	Redis   Redis `mapstructure:"redis"`
	DB      DB
	Ops     Ops
	Views   Views
}

// Defaults fills whatever the file and env leave unset.
func Defaults() Config {
	return Config{
		App: App{Name: "casetracker", Env: "local"},
		Log: Log{Level: "info", Rotate: Rotate{
			Filename: "logs/casetracker.log", MaxSizeMB: 100, MaxBackups: 7, MaxAgeDays: 30,
		}},
		Storage: Storage{Driver: "memory", KeyPrefix: "casetracker_"},
		Redis:   Redis{Addr: "127.0.0.1:6379"},
		DB:      DB{Driver: "sqlite", DSN: "casetracker.db", MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetimeMin: 30, LogLevel: "warn"},
		Ops: Ops{
			Host: "127.0.0.1", Port: 9090,
			ReadTimeoutSec: 5, WriteTimeoutSec: 10, IdleTimeoutSec: 60,
		},
		Views: Views{DueSoonDays: 7, RecentLimit: 10},
	}
}

// Load reads the yaml file at path, falling back to $CONFIG_PATH and then
// ./configs/config.local.yaml. A missing file is not an error; APP_* env vars
// (APP_STORAGE_DRIVER, APP_REDIS_ADDR, ...) override either way.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys whose zero value is meaningful default here; mergo would
	// overwrite an explicit false or 0.
	v.SetDefault("storage.seed", true)
	v.SetDefault("ops.enable", true)
	v.SetDefault("ops.rps", 20)
	v.SetDefault("ops.burst", 40)
	// AutomaticEnv only sees keys viper already knows about.
	for _, k := range []string{
		"app.name", "app.env", "log.level", "log.json", "log.rotate.enable",
		"storage.driver", "storage.keyprefix", "storage.reset", "redis.addr", "redis.password", "redis.db",
		"db.driver", "db.dsn", "db.loglevel", "ops.host", "ops.port", "ops.rps", "ops.burst",
		"views.duesoondays",
	} {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := mergo.Merge(&c, Defaults()); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	return &c, nil
}
