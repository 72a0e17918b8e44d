package session

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/naveenspark/langgpt/internal/apitest"
	"github.com/naveenspark/langgpt/internal/storage"
	"github.com/naveenspark/langgpt/pkg/client"
)

type fixture struct {
	srv    *apitest.Server
	tokens *storage.MemoryStore
	api    *client.Client
	store  *Store
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New(t)
	srv.AddUser("mina", "mina@example.com", "secret-pw")

	core, logs := observer.New(zap.DebugLevel)
	tokens := storage.NewMemoryStore()
	api := client.New(srv.URL, storage.TokenReader(tokens))
	store := New(api, tokens, zap.New(core))
	api.SetUnauthorizedHandler(store.Expire)
	return &fixture{srv: srv, tokens: tokens, api: api, store: store, logs: logs}
}

// recorder collects published states.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) add(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestNewStartsLoading(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, State{Loading: true}, f.store.Snapshot())
}

func TestBootstrapWithoutToken(t *testing.T) {
	f := newFixture(t)
	var rec recorder
	f.store.Subscribe(rec.add)

	f.store.Bootstrap(context.Background())

	assert.Equal(t, State{}, f.store.Snapshot())
	assert.Empty(t, f.srv.Requests(), "no token means no network call")
	require.Len(t, rec.all(), 1)
	assert.False(t, rec.all()[0].Loading)
}

func TestBootstrapWithValidToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Set(storage.TokenKey, f.srv.IssueToken("mina")))

	f.store.Bootstrap(context.Background())

	st := f.store.Snapshot()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
	require.NotNil(t, st.User)
	assert.Equal(t, "mina", st.User.Username)
}

func TestBootstrapWithRejectedToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Set(storage.TokenKey, "stale"))

	f.store.Bootstrap(context.Background())

	assert.Equal(t, State{}, f.store.Snapshot(), "a rejected token at startup is not an expiry")
	assert.False(t, storage.Has(f.tokens, storage.TokenKey))
}

func TestBootstrapRunsOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Set(storage.TokenKey, f.srv.IssueToken("mina")))

	f.store.Bootstrap(context.Background())
	f.store.Bootstrap(context.Background())

	assert.Len(t, f.srv.Requests(), 1)
}

func TestLoginThenLogout(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())

	require.True(t, f.store.Login(context.Background(), "mina", "secret-pw"))
	st := f.store.Snapshot()
	assert.True(t, st.Authenticated)
	assert.Equal(t, "mina@example.com", st.User.Email)
	assert.True(t, storage.Has(f.tokens, storage.TokenKey))

	f.store.Logout()
	assert.Equal(t, State{}, f.store.Snapshot())
	assert.False(t, storage.Has(f.tokens, storage.TokenKey))
}

func TestLoginCarriesNewTokenOnNextRequest(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())
	require.True(t, f.store.Login(context.Background(), "mina", "secret-pw"))

	tok, err := f.tokens.Get(storage.TokenKey)
	require.NoError(t, err)

	_, err = f.api.History(context.Background(), 3)
	require.NoError(t, err)
	req, ok := f.srv.LastRequest("/history")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+tok, req.Authorization)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())
	var rec recorder
	f.store.Subscribe(rec.add)

	assert.False(t, f.store.Login(context.Background(), "mina", "wrong"))
	assert.Equal(t, State{}, f.store.Snapshot())
	assert.Empty(t, rec.all())
	assert.False(t, storage.Has(f.tokens, storage.TokenKey))
}

func TestLoginProfileFailureStoresNoToken(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())
	f.srv.FailNext("/api/me", http.StatusInternalServerError, `{"detail":"db down"}`)

	assert.False(t, f.store.Login(context.Background(), "mina", "secret-pw"))
	assert.False(t, f.store.Snapshot().Authenticated)
	assert.False(t, storage.Has(f.tokens, storage.TokenKey))
}

func TestLoginWhileAuthenticatedProfileFailure(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusUnauthorized} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			f := newFixture(t)
			f.srv.AddUser("bob", "bob@example.com", "bob-pw")
			f.store.Bootstrap(context.Background())
			require.True(t, f.store.Login(context.Background(), "mina", "secret-pw"))
			before := f.store.Snapshot()
			tok, err := f.tokens.Get(storage.TokenKey)
			require.NoError(t, err)

			var rec recorder
			f.store.Subscribe(rec.add)
			f.srv.FailNext("/api/me", status, `{"detail":"nope"}`)

			assert.False(t, f.store.Login(context.Background(), "bob", "bob-pw"))
			assert.Equal(t, before, f.store.Snapshot())
			assert.Empty(t, rec.all())
			got, err := f.tokens.Get(storage.TokenKey)
			require.NoError(t, err)
			assert.Equal(t, tok, got)

			// mina's token still works.
			_, err = f.api.History(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, before, f.store.Snapshot())
		})
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())

	assert.True(t, f.store.Register(context.Background(), "taro", "taro@example.jp", "pw"))
	assert.False(t, f.store.Snapshot().Authenticated)
	assert.False(t, storage.Has(f.tokens, storage.TokenKey))

	err := f.store.RegisterErr(context.Background(), "taro", "taro@example.jp", "pw")
	require.Error(t, err)
	httpErr := client.AsHTTPError(err)
	require.NotNil(t, httpErr)
	assert.Equal(t, "Username already registered", httpErr.Message)
	assert.False(t, f.store.Register(context.Background(), "taro", "taro@example.jp", "pw"))
}

func TestUnauthorizedResponseExpiresSession(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())
	require.True(t, f.store.Login(context.Background(), "mina", "secret-pw"))

	var rec recorder
	f.store.Subscribe(rec.add)
	f.srv.RevokeAll()

	_, err := f.api.Translate(context.Background(), "안녕", "ko2ja")
	require.True(t, client.IsUnauthorized(err))

	assert.Equal(t, State{Expired: true}, f.store.Snapshot())
	assert.False(t, storage.Has(f.tokens, storage.TokenKey))
	require.Len(t, rec.all(), 1)
	assert.True(t, rec.all()[0].Expired)

	// A second 401 while logged out publishes nothing.
	f.api.Translate(context.Background(), "안녕", "ko2ja") //nolint:errcheck
	assert.Len(t, rec.all(), 1)
}

func TestSubscribeCancel(t *testing.T) {
	f := newFixture(t)
	var rec recorder
	cancel := f.store.Subscribe(rec.add)
	f.store.Bootstrap(context.Background())
	cancel()
	cancel()
	f.store.Logout()
	assert.Len(t, rec.all(), 1)
}

func TestTokenExpiry(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.TokenExpiry()
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, f.tokens.Set(storage.TokenKey, "opaque"))
	_, err = f.store.TokenExpiry()
	require.ErrorIs(t, err, ErrNoExpiry)

	require.NoError(t, f.tokens.Set(storage.TokenKey, f.srv.IssueToken("mina")))
	exp, err := f.store.TokenExpiry()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}

func TestLogsNeverContainSecrets(t *testing.T) {
	f := newFixture(t)
	f.store.Bootstrap(context.Background())
	f.store.Login(context.Background(), "mina", "wrong")
	require.True(t, f.store.Login(context.Background(), "mina", "secret-pw"))
	tok, err := f.tokens.Get(storage.TokenKey)
	require.NoError(t, err)

	require.NotZero(t, f.logs.Len())
	for _, entry := range f.logs.All() {
		for k, v := range entry.ContextMap() {
			s, _ := v.(string)
			assert.NotContains(t, s, "secret-pw", "field %s", k)
			assert.NotContains(t, s, tok, "field %s", k)
		}
	}
}
