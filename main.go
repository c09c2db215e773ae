package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/secretnamebasis/simple-tari/api"
	"github.com/secretnamebasis/simple-tari/connections"
	"github.com/secretnamebasis/simple-tari/db"
	"github.com/secretnamebasis/simple-tari/globals"
	"github.com/secretnamebasis/simple-tari/indexer"
	"github.com/secretnamebasis/simple-tari/structs"
)

var (
	wallet_endpoint  = flag.String("wallet_endpoint", "", "-wallet_endpoint=http://HOST:PORT")
	indexer_endpoint = flag.String("indexer_endpoint", "", "-indexer_endpoint=http://HOST:PORT")
	api_port         = flag.String("api_port", "8080", "-api_port=8080")
	scan_interval    = flag.Duration("scan_interval", time.Second*30, "-scan_interval=30s")
	debug            = flag.Bool("debug", false, "-debug")
	help             = flag.Bool("help", false, "-help")
)

func main() {
	flag.Parse()
	if help != nil && *help {
		fmt.Println(`Usage: simple-tari [options]
A substate scanner and cache for a tari-style wallet daemon / indexer.

Options:
  -wallet_endpoint <URL>    Wallet daemon to authenticate against.
  -indexer_endpoint <URL>   Indexer to scan substates from.
  -api_port <PORT>          Port for the local read api.
  -scan_interval <DUR>      How often to rescan.
  -debug                    Verbose logging.
  -help                     Show this help message.`)

		return
	}

	// we are going to use all the noise we can get
	indexer.InitLog(map[string]any{"--debug": *debug}, os.Stdout)

	cfg, err := connections.FromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		return
	}
	if wallet_endpoint != nil && *wallet_endpoint != "" {
		cfg.WalletEndpoint = *wallet_endpoint
	}
	if indexer_endpoint != nil && *indexer_endpoint != "" {
		cfg.IndexerEndpoint = *indexer_endpoint
	}

	ctx := context.Background()

	// the wallet session authenticates; the indexer session is where the
	// substates come from
	wallet := connections.NewWalletSession(cfg)
	scanSource := connections.NewIndexerSession(cfg)

	identity, err := connections.GetIdentity(ctx, wallet)
	if err != nil {
		fmt.Println("please connect through rpc:", err)
		return
	}
	if !connections.CheckVersion(identity.Version) {
		globals.Logger.Warnf("daemon version %q is older than supported, decoding may drift", identity.Version)
	}

	fmt.Println("opening db")
	store, err := db.NewBBoltDB(filepath.Join(globals.GetDataDirectory(), "simpletaridb"), "SUBSTATES.db")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer store.Close()

	cursor, err := store.GetLastScannedVersion()
	if err != nil {
		cursor = 0
	}

	scanner := indexer.NewScanner(store, scanSource, cursor)
	worker := &indexer.Worker{Queue: make(chan structs.SubstateStage, 1000), Scn: scanner}

	fmt.Println("setting up queue processor")
	go worker.ProcessQueue()

	fmt.Println("serving cache api on port", *api_port)
	go func() {
		if err := api.Start(*api_port, store); err != nil {
			fmt.Println("api error:", err)
		}
	}()

	fmt.Println("starting to scan from version", cursor)
	for {
		staged, err := scanner.ScanOnce(ctx, worker.Queue)
		if err != nil {
			fmt.Println("scan error:", err)
		} else {
			fmt.Printf("staged %d substates, cursor %d\n", staged, scanner.LastScannedVersion)
		}
		time.Sleep(*scan_interval)
	}
}
