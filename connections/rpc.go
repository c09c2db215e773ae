// Package connections is the process-wide transport to the wallet daemon and
// indexer backends. One Session is built per backend and passed to every
// call site; it resolves the endpoint once, performs the login handshake at
// most once, and hands out strictly increasing request ids no matter how
// many calls are in flight.
package connections

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc/v3"

	"github.com/secretnamebasis/simple-tari/globals"
	"github.com/secretnamebasis/simple-tari/models"
)

// a well-known path next to the backend that returns its json-rpc base url
// as plain text
const discoveryPath = "/json_rpc_address"

type Session struct {
	cfg      Config
	fallback string
	l        *logrus.Entry

	httpc *http.Client

	// endpoint discovery happens once, on the first call, and is never
	// retried for the life of the process
	discover sync.Once
	endpoint string

	// auth bootstrap domain: the critical section spans the two handshake
	// round trips, waiters re-read the token when they get the lock
	authMu sync.Mutex
	token  string

	// id allocation domain: the critical section is just the increment, it
	// must stay independent of the auth lock
	idMu   sync.Mutex
	nextID int
}

// NewWalletSession builds the session for the wallet daemon surface
func NewWalletSession(cfg Config) *Session {
	return newSession(cfg, cfg.WalletEndpoint)
}

// NewIndexerSession builds the session for the indexer surface; the two
// differ only in their fallback endpoint
func NewIndexerSession(cfg Config) *Session {
	return newSession(cfg, cfg.IndexerEndpoint)
}

func newSession(cfg Config, fallback string) *Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Session{
		cfg:      cfg,
		fallback: strings.TrimRight(fallback, "/"),
		httpc:    &http.Client{Timeout: cfg.Timeout},
		l:        globals.Logger.WithFields(logrus.Fields{"prefix": "rpc"}),
	}
}

// Endpoint resolves the backend address on first use. A discovery failure of
// any kind falls back to the configured address and stays there.
func (s *Session) Endpoint() string {
	s.discover.Do(func() {
		s.endpoint = s.fallback
		resp, err := s.httpc.Get(s.fallback + discoveryPath)
		if err != nil {
			s.l.Debugf("endpoint discovery failed, keeping %s: %v", s.fallback, err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			s.l.Debugf("endpoint discovery status %d, keeping %s", resp.StatusCode, s.fallback)
			return
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if err != nil {
			return
		}
		addr := strings.TrimSpace(string(body))
		if addr == "" {
			return
		}
		if !strings.Contains(addr, "://") {
			addr = "http://" + addr
		}
		s.endpoint = strings.TrimRight(addr, "/")
		s.l.Debugf("endpoint discovered: %s", s.endpoint)
	})
	return s.endpoint
}

// ids start at 0, only go up, and are never reused even when a call fails
func (s *Session) allocID() int {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

// Token returns the current bearer token, empty before the first handshake
func (s *Session) Token() string {
	s.authMu.Lock()
	defer s.authMu.Unlock()
	return s.token
}

// RevokeToken clears the session token. The session never does this on its
// own: an expired token surfaces as an APIError and keeps surfacing until
// the caller revokes and retries.
func (s *Session) RevokeToken() {
	s.authMu.Lock()
	defer s.authMu.Unlock()
	s.token = ""
}

// ensureToken runs the two-step login handshake exactly once. Whoever gets
// the lock with a token already in place was just waiting on the handshake
// owner and uses that token.
func (s *Session) ensureToken(ctx context.Context) error {
	s.authMu.Lock()
	defer s.authMu.Unlock()
	if s.token != "" {
		return nil
	}

	var challenge models.AuthRequest_Result
	err := s.rawCall(ctx, "auth.request", models.AuthRequest_Params{Permissions: []string{"Admin"}}, "", &challenge)
	if err != nil {
		return err
	}

	var granted models.AuthAccept_Result
	err = s.rawCall(ctx, "auth.accept", models.AuthAccept_Params{AuthToken: challenge.AuthToken, Name: s.cfg.AppName}, "", &granted)
	if err != nil {
		return err
	}

	s.token = granted.PermissionsToken
	s.l.Debug("auth handshake complete")
	return nil
}

// rawCall posts one envelope. No retries, no token management; errors come
// back typed and untouched.
func (s *Session) rawCall(ctx context.Context, method string, params any, token string, out any) error {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	client := jsonrpc.NewClientWithOpts(s.Endpoint(), &jsonrpc.RPCClientOpts{
		HTTPClient:    s.httpc,
		CustomHeaders: headers,
	})

	req := &jsonrpc.RPCRequest{
		JSONRPC: "2.0",
		ID:      s.allocID(),
		Method:  method,
		Params:  params,
	}

	resp, err := client.CallRaw(ctx, req)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	if resp.Error != nil {
		return &APIError{Method: method, Code: resp.Error.Code, Message: resp.Error.Message, Data: resp.Error.Data}
	}
	if out == nil {
		return nil
	}
	if err := resp.GetObject(out); err != nil {
		return &TransportError{Method: method, Err: err}
	}
	return nil
}

// Call is the generic primitive every typed wrapper sits on: make sure a
// token exists, then post the envelope with it attached.
func (s *Session) Call(ctx context.Context, method string, params any) (any, error) {
	if err := s.ensureToken(ctx); err != nil {
		return nil, err
	}
	var out any
	if err := s.rawCall(ctx, method, params, s.Token(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CallFor is Call with the result decoded into a typed payload
func CallFor[T any](ctx context.Context, s *Session, method string, params any) (T, error) {
	var out T
	if err := s.ensureToken(ctx); err != nil {
		return out, err
	}
	if err := s.rawCall(ctx, method, params, s.Token(), &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
