// Package indexer is the background scanner: it pages substates off the
// backend, decodes their value trees, and feeds the local cache through a
// worker queue.
package indexer

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/secretnamebasis/simple-tari/connections"
	"github.com/secretnamebasis/simple-tari/db"
	"github.com/secretnamebasis/simple-tari/globals"
	"github.com/secretnamebasis/simple-tari/models"
	"github.com/secretnamebasis/simple-tari/structs"
	"github.com/secretnamebasis/simple-tari/substate"
	"github.com/secretnamebasis/simple-tari/tagged"
)

type Scanner struct {
	LastScannedVersion uint64
	BBSBackend         *db.BboltStore
	Session            *connections.Session
	Status             structs.State
	Closing            bool
	sync.RWMutex
}

type Worker struct {
	Queue chan structs.SubstateStage
	Scn   *Scanner
}

// local logger
var l *logrus.Entry

func InitLog(args map[string]interface{}, console io.Writer) {
	loglevel_console := logrus.InfoLevel

	if args["--debug"] != nil && args["--debug"].(bool) {
		loglevel_console = logrus.DebugLevel
	}

	format := &prefixed.TextFormatter{
		ForceColors:     true,
		DisableColors:   false,
		TimestampFormat: "01/02/2006 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	}

	globals.Logger = logrus.Logger{Out: console, Level: loglevel_console, Formatter: format}
}

func NewScanner(backend *db.BboltStore, session *connections.Session, lastVersion uint64) *Scanner {
	l = globals.Logger.WithFields(logrus.Fields{})

	return &Scanner{LastScannedVersion: lastVersion, BBSBackend: backend, Session: session,
		Status: structs.State{DbOk: true, ApiOk: true}}
}

// ScanOnce lists the backend's substates, decodes each one, and stages it on
// the queue. Returns how many made it onto the queue.
func (scn *Scanner) ScanOnce(ctx context.Context, queue chan<- structs.SubstateStage) (staged int, err error) {
	list, err := connections.SubstatesList(ctx, scn.Session, models.SubstatesList_Params{})
	if err != nil {
		scn.Status.NewError("rpc", "substates.list", "", err)
		return 0, err
	}
	scn.Status.Reset()

	for _, rec := range list.Substates {
		if scn.Closing {
			return staged, nil
		}

		id, err := substate.FromString(rec.SubstateID)
		if err != nil {
			l.Printf("[ScanOnce] skipping unparseable id %q: %v", rec.SubstateID, err)
			continue
		}

		full, err := connections.SubstatesGet(ctx, scn.Session, models.SubstatesGet_Params{SubstateID: rec.SubstateID})
		if err != nil {
			scn.Status.NewError("rpc", "substates.get", rec.SubstateID, err)
			l.Printf("[ScanOnce] substates.get %s: %v", rec.SubstateID, err)
			continue
		}

		stage := structs.SubstateStage{ID: id, Record: rec}
		switch {
		case full.Value != nil:
			stage.Decoded = tagged.Decode(full.Value)
		case full.ValueCBOR != "":
			raw, err := hex.DecodeString(full.ValueCBOR)
			if err != nil {
				l.Printf("[ScanOnce] bad cbor hex for %s: %v", rec.SubstateID, err)
				continue
			}
			tree, err := tagged.FromCBOR(raw)
			if err != nil {
				l.Printf("[ScanOnce] bad cbor for %s: %v", rec.SubstateID, err)
				continue
			}
			stage.Decoded = tagged.Decode(tree)
		}

		// receipts carry the transaction outcome too
		if receipt, isReceipt := id.(substate.TransactionReceipt); isReceipt {
			res, err := connections.TransactionGetResult(ctx, scn.Session,
				models.TransactionGetResult_Params{TransactionID: string(receipt)})
			if err != nil {
				l.Printf("[ScanOnce] transactions.get_result %s: %v", receipt, err)
			} else {
				stage.Result = res.Result
			}
		}

		queue <- stage
		staged++
	}

	return staged, nil
}

// ProcessQueue drains staged substates into the cache; run it once per worker
func (w *Worker) ProcessQueue() {
	for staged := range w.Queue {
		if err := w.Scn.AddToCache(staged); err != nil {
			l.Printf("[ProcessQueue] cache error: %v %s", err, staged.Record.SubstateID)
			continue
		}

		l.Debugf("[ProcessQueue] cached %s v%d", staged.Record.SubstateID, staged.Record.Version)
	}
}

// AddToCache writes one staged substate through to the store and advances the
// cursor when the version moved forward
func (scn *Scanner) AddToCache(staged structs.SubstateStage) error {
	if staged.ID == nil {
		return errors.New("no substate id")
	}

	rec := db.CachedSubstate{
		SubstateID:      staged.ID.String(),
		Version:         staged.Record.Version,
		TemplateAddress: staged.Record.TemplateAddress,
		Value:           staged.Decoded,
		UpdatedAt:       time.Now().Unix(),
	}
	if reason := substate.GetRejectReason(staged.Result); reason != nil {
		rec.Result = reason.Display()
	} else if substate.GetSubstateDiff(staged.Result) != nil {
		rec.Result = "Accept"
	}

	l.Info("[AddToCache] storing substate: ", fmt.Sprint(rec.SubstateID), " v", rec.Version)
	changed, err := scn.BBSBackend.StoreSubstate(rec)
	if err != nil {
		scn.Status.NewError("database", "StoreSubstate", rec.SubstateID, err)
		return err
	}
	if !changed {
		return errors.New("did not store substate")
	}

	scn.Lock()
	advanced := staged.Record.Version > scn.LastScannedVersion
	if advanced {
		scn.LastScannedVersion = staged.Record.Version
	}
	cursor := scn.LastScannedVersion
	scn.Unlock()

	if advanced {
		if ok, err := scn.BBSBackend.StoreLastScannedVersion(cursor); !ok && err != nil {
			return err
		}
	}

	return nil
}
