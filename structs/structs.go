package structs

import (
	"sync"

	"github.com/secretnamebasis/simple-tari/models"
	"github.com/secretnamebasis/simple-tari/substate"
)

// a substate pulled off the backend, decoded and waiting to be cached
type SubstateStage struct {
	ID      substate.ID
	Record  models.SubstateRecord
	Decoded any
	Result  *substate.Result
}

// State tracks health for the scanner and the local api
type State struct {
	ErrorType   string
	ErrorName   string
	ErrorDetail string
	Error       error
	DbOk        bool
	ApiOk       bool
	ErrorCount  int64
	TotalErrors int64
	sync.Mutex
}

// No errors
func (s *State) OK() bool {
	s.Lock()
	defer s.Unlock()
	return s.DbOk && s.ApiOk
}

// Error type, name, details
func (s *State) NewError(etype string, ename string, detail string, err error) {
	s.Lock()
	defer s.Unlock()

	switch etype {
	case "database":
		s.DbOk = false
	case "connection", "rpc":
		s.ApiOk = false
	}
	s.ErrorCount++
	s.ErrorType = etype
	s.ErrorName = ename
	s.ErrorDetail = detail
	s.Error = err
}

// Reset errors
func (s *State) Reset() {
	s.Lock()
	defer s.Unlock()

	s.TotalErrors += s.ErrorCount
	s.ErrorCount = 0
	s.ErrorType = ""
	s.ErrorName = ""
	s.ErrorDetail = ""
	s.Error = nil
	s.DbOk = true
	s.ApiOk = true
}
