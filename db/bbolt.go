// Package db is the local substate cache: decoded substates keyed by their
// canonical address string, plus the scanner's cursor.
package db

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/secretnamebasis/simple-tari/globals"
)

// local logger
var logger *logrus.Entry

const (
	substatesBucket = "substates"
	statsBucket     = "stats"
)

type BboltStore struct {
	DB      *bolt.DB
	DBPath  string
	Closing bool
}

// a cached substate: the decoded value plus enough of the record to serve it
// back without another network call
type CachedSubstate struct {
	SubstateID      string `json:"substate_id"`
	Version         uint64 `json:"version"`
	TemplateAddress string `json:"template_address,omitempty"`
	Value           any    `json:"value,omitempty"`
	Result          string `json:"result,omitempty"`
	UpdatedAt       int64  `json:"updated_at"`
}

func NewBBoltDB(dbPath, dbName string) (*BboltStore, error) {
	var err error
	bbs := &BboltStore{}

	logger = globals.Logger.WithFields(logrus.Fields{"prefix": "db"})

	if err := os.MkdirAll(dbPath, 0700); err != nil {
		return nil, fmt.Errorf("directory creation err %s - dirpath %s", err, dbPath)
	}
	dbFile := filepath.Join(dbPath, dbName)
	bbs.DB, err = bolt.Open(dbFile, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return bbs, fmt.Errorf("[NewBBoltDB] could not create bbolt db store: %v", err)
	}

	bbs.DBPath = dbPath

	return bbs, err
}

func (bbs *BboltStore) Close() error {
	bbs.Closing = true
	return bbs.DB.Close()
}

// Stores one cached substate, overwriting any earlier version
func (bbs *BboltStore) StoreSubstate(rec CachedSubstate) (changes bool, err error) {
	if rec.SubstateID == "" {
		return false, fmt.Errorf("[StoreSubstate] no substate id")
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("[StoreSubstate] could not marshal substate: %v", err)
	}

	err = bbs.DB.Update(func(tx *bolt.Tx) (err error) {
		b, err := tx.CreateBucketIfNotExists([]byte(substatesBucket))
		if err != nil {
			return fmt.Errorf("bucket: %s", err)
		}

		err = b.Put([]byte(rec.SubstateID), body)
		changes = true
		return
	})

	return
}

// Returns one cached substate, or nil when the id was never cached
func (bbs *BboltStore) GetSubstate(substateID string) (rec *CachedSubstate, err error) {
	var v []byte

	bbs.DB.View(func(tx *bolt.Tx) (err error) {
		b := tx.Bucket([]byte(substatesBucket))
		if b != nil {
			v = b.Get([]byte(substateID))
		}
		return
	})

	if v == nil {
		logger.Printf("[GetSubstate] no cache entry for %v", substateID)
		return nil, nil
	}

	rec = &CachedSubstate{}
	if err := json.Unmarshal(v, rec); err != nil {
		return nil, fmt.Errorf("[GetSubstate] could not unmarshal substate: %v", err)
	}
	return rec, nil
}

// Returns every cached substate keyed by its canonical id
func (bbs *BboltStore) GetAllSubstates() map[string]CachedSubstate {
	results := make(map[string]CachedSubstate)

	bbs.DB.View(func(tx *bolt.Tx) (err error) {
		b := tx.Bucket([]byte(substatesBucket))
		if b != nil {
			c := b.Cursor()

			for k, v := c.First(); k != nil && v != nil; k, v = c.Next() {
				var rec CachedSubstate
				if err := json.Unmarshal(v, &rec); err != nil {
					logger.Printf("[GetAllSubstates] skipping %s: %v", string(k), err)
					continue
				}
				results[string(k)] = rec
			}
		}

		return
	})

	return results
}

// Stores the scanner's cursor - this is for stateful stores on close and
// reference on open
func (bbs *BboltStore) StoreLastScannedVersion(version uint64) (changes bool, err error) {
	err = bbs.DB.Update(func(tx *bolt.Tx) (err error) {
		b, err := tx.CreateBucketIfNotExists([]byte(statsBucket))
		if err != nil {
			return fmt.Errorf("bucket: %s", err)
		}

		err = b.Put([]byte("lastscannedversion"), []byte(strconv.FormatUint(version, 10)))
		changes = true
		return
	})

	return
}

// Gets the scanner's cursor
func (bbs *BboltStore) GetLastScannedVersion() (version uint64, err error) {
	bbs.DB.View(func(tx *bolt.Tx) (err error) {
		b := tx.Bucket([]byte(statsBucket))
		if b != nil {
			v := b.Get([]byte("lastscannedversion"))

			if v != nil {
				version, err = strconv.ParseUint(string(v), 10, 64)
				if err != nil {
					return fmt.Errorf("[GetLastScannedVersion] ERR - error parsing stored cursor: %v", err)
				}
			}
		}
		return
	})

	if version == 0 {
		logger.Printf("[GetLastScannedVersion] no stored cursor, starting from 0")
	}

	return
}
