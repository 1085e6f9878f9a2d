package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrPlayerCount = errors.New("wrong number of players")

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Match      Match  `yaml:"match"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Match struct {
	Rounds           int           `yaml:"rounds" env:"MATCH_ROUNDS" env-default:"5"`
	Players          []string      `yaml:"players" env:"MATCH_PLAYERS" env-default:"human,ai"`
	TickInterval     time.Duration `yaml:"tick-interval" env:"MATCH_TICK_INTERVAL" env-default:"50ms"`
	BotDelay         time.Duration `yaml:"bot-delay" env:"MATCH_BOT_DELAY" env-default:"700ms"`
	Seed             int64         `yaml:"seed" env:"MATCH_SEED" env-default:"0"`
	SnapshotSchedule string        `yaml:"snapshot-schedule" env:"MATCH_SNAPSHOT_SCHEDULE" env-default:"@every 10s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// PlayerTypes maps the configured seats, in order, to player types. Remote seats are
// refused since only a dedicated server could feed them.
func (that *Match) PlayerTypes() ([entity.PlayerCount]entity.PlayerType, error) {
	var types [entity.PlayerCount]entity.PlayerType

	if len(that.Players) != entity.PlayerCount {
		return types, fmt.Errorf("%w: got %d (%s), want %d",
			ErrPlayerCount, len(that.Players), strings.Join(that.Players, ","), entity.PlayerCount)
	}

	for i, value := range that.Players {
		playerType, err := entity.ParsePlayerType(value)
		if err != nil {
			return types, fmt.Errorf("player %d: %w", i, err)
		}

		if playerType == entity.TypeRemote {
			return types, fmt.Errorf("player %d: %w", i, apperror.ErrDedicatedNotImplemented)
		}

		types[i] = playerType
	}

	return types, nil
}

// SeedOrNow returns the configured seed, or a time based one when it is zero.
func (that *Match) SeedOrNow(now time.Time) int64 {
	if that.Seed != 0 {
		return that.Seed
	}

	return now.UnixNano()
}
