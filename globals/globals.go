package globals

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// shared logger, reconfigured by indexer.InitLog; discards until then
var Logger = logrus.Logger{
	Out:       io.Discard,
	Formatter: &logrus.TextFormatter{},
	Level:     logrus.InfoLevel,
}

// default backend addresses, used when discovery fails and nothing is configured
const (
	DefaultWalletEndpoint  = "http://localhost:9000"
	DefaultIndexerEndpoint = "http://localhost:3333"
)

// Returns the directory where databases live
func GetDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		wd, err := os.Getwd()
		if err != nil {
			return "."
		}
		return wd
	}
	return filepath.Join(home, ".simple-tari")
}
