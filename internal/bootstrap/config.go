package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	BotServerPort     string `mapstructure:"BOT_SERVER_PORT"`
	BotGrpcAddr       string `mapstructure:"BOT_GRPC_ADDR"`
	RedisUrl          string `mapstructure:"REDIS_URL"`
	MongoUri          string `mapstructure:"MONGO_URI"`
	MongoDb           string `mapstructure:"MONGO_DB"`
	IsLocalCors       bool   `mapstructure:"LOCAL_CORS"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	DefaultBoardSize  int    `mapstructure:"DEFAULT_BOARD_SIZE"`
}

var defaults = map[string]any{
	"SERVER_PORT":         "4000",
	"BOT_SERVER_PORT":     "8082",
	"BOT_GRPC_ADDR":       "",
	"REDIS_URL":           "localhost:6379",
	"MONGO_URI":           "mongodb://localhost:27017",
	"MONGO_DB":            "yovi2c_db",
	"LOCAL_CORS":          true,
	"SESSION_TTL_MINUTES": 120,
	"DEFAULT_BOARD_SIZE":  8,
}

// Setup reads cfgPath (a .env style file) and lets environment variables
// override it. A missing file leaves the defaults in place.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
