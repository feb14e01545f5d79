package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	PresentationTerminal = "terminal"
	PresentationServer   = "server"
)

// xdgConfigFile is looked up under the XDG config dirs when no local config.yml exists.
const xdgConfigFile = "tictactoe/config.yml"

type Config struct {
	LogLevel     string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Presentation string `yaml:"presentation" env:"PRESENTATION" env-default:"terminal"`
	HTTPPort     string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort   string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Game         Game   `yaml:"game"`
}

type Game struct {
	Mode          string        `yaml:"mode" env:"GAME_MODE" env-default:"pvp"`
	ComputerDelay time.Duration `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"500ms"`
}

// MustLoad - load all configurations from the config.yml file at path.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path, or the XDG config file when path does not exist, or only the environment when neither exists.
func Load(path string) (*Config, error) {
	config := &Config{}

	file, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if file == "" {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err = cleanenv.ReadConfig(file, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	return config, nil
}

func resolvePath(path string) (string, error) {
	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat config file: %w", err)
	}

	file, err := xdg.SearchConfigFile(xdgConfigFile)
	if err != nil {
		// no config file anywhere
		return "", nil //nolint: nilerr // environment and defaults are enough
	}

	return file, nil
}
