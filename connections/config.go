package connections

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// simple way to bound every network call; the source this replaces had none
const defaultTimeout = time.Second * 9 // the world is a really big place

type Config struct {
	WalletEndpoint  string        `env:"WALLET_DAEMON_URL" envDefault:"http://localhost:9000"`
	IndexerEndpoint string        `env:"INDEXER_URL" envDefault:"http://localhost:3333"`
	Timeout         time.Duration `env:"RPC_TIMEOUT" envDefault:"9s"`
	AppName         string        `env:"RPC_APP_NAME" envDefault:"simple-tari"`
}

// FromEnv reads the config from the environment, with the defaults above
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg, nil
}
