package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salafuz/admin-panel/internal/client/api"
	"github.com/salafuz/admin-panel/internal/client/auth"
	"github.com/salafuz/admin-panel/internal/client/iocli"
	"github.com/salafuz/admin-panel/internal/client/storage"
	"github.com/salafuz/admin-panel/internal/client/storage/boltdb"
	"github.com/salafuz/admin-panel/internal/client/store"
	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// fakeServer эмулирует API панели управления
type fakeServer struct {
	access   string
	refresh  string
	queries  []string
	requests int
	mu       sync.Mutex
}

func (f *fakeServer) authorized(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access != "" && r.Header.Get("Authorization") == "Bearer "+f.access
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	send := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	unauthorized := func(w http.ResponseWriter) {
		send(w, http.StatusUnauthorized, pkgapi.ErrorResponse{Message: "Unauthenticated."})
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Login != "admin" || req.Password != "secret123" {
			send(w, http.StatusUnauthorized, pkgapi.ErrorResponse{Message: "Invalid credentials."})
			return
		}
		f.mu.Lock()
		f.access, f.refresh = "A1", "R1"
		f.mu.Unlock()
		send(w, http.StatusOK, pkgapi.TokenResponse{
			AccessToken:  "A1",
			RefreshToken: "R1",
			User:         &pkgapi.UserProfile{ID: 1, Login: "admin", Role: pkgapi.RoleAdmin},
		})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		ok := f.refresh != "" && req.RefreshToken == f.refresh
		if ok {
			f.access, f.refresh = f.access+"'", f.refresh+"'"
		}
		access, refresh := f.access, f.refresh
		f.mu.Unlock()
		if !ok {
			unauthorized(w)
			return
		}
		send(w, http.StatusOK, pkgapi.TokenResponse{AccessToken: access, RefreshToken: refresh})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			unauthorized(w)
			return
		}
		send(w, http.StatusOK, pkgapi.UserProfile{ID: 1, Login: "admin", Role: pkgapi.RoleAdmin})
	})
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.queries = append(f.queries, r.URL.RawQuery)
		f.mu.Unlock()
		if !f.authorized(r) {
			unauthorized(w)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		var data []pkgapi.Post
		for i := (page-1)*perPage + 1; i <= min(page*perPage, 35); i++ {
			data = append(data, pkgapi.Post{ID: int64(i), Title: "Post " + strconv.Itoa(i), Status: pkgapi.StatusPublished})
		}
		send(w, http.StatusOK, pkgapi.ListResponse[pkgapi.Post]{Data: data, Total: 35, Page: page, PerPage: perPage})
	})
	mux.HandleFunc("POST /categories", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		if !f.authorized(r) {
			unauthorized(w)
			return
		}
		var in pkgapi.CategoryInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		send(w, http.StatusCreated, pkgapi.Category{ID: 9, Name: *in.Name, Slug: "aqidah"})
	})
	return mux
}

type testEnv struct {
	cli     *Cli
	out     *bytes.Buffer
	fake    *fakeServer
	session *auth.Manager
	storage *boltdb.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := &fakeServer{}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	db, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := api.NewClient(server.URL)
	session := auth.NewManager(client, db, client, nil)
	client.UseSession(session)

	out := &bytes.Buffer{}
	c := New(iocli.New(bytes.NewReader(nil), out), client, session, store.NewStores(client, nil), db)

	return &testEnv{cli: c, out: out, fake: fake, session: session, storage: db}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	t.Setenv(PasswordEnv, "secret123")
	require.NoError(t, e.cli.Run(context.Background(), []string{"login", "--login", "admin"}))
	e.out.Reset()
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	env := newTestEnv(t)

	err := env.cli.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, env.out.String(), "Usage:")
}

func TestRun_GuardRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, args := range [][]string{{"posts", "list"}, {"status"}, {"logout"}} {
		err := env.cli.Run(context.Background(), args)
		require.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Contains(t, err.Error(), "admin login")
	}
	assert.Zero(t, env.fake.requests)
}

func TestRun_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Setenv(PasswordEnv, "secret123")
	require.NoError(t, env.cli.Run(ctx, []string{"login", "--login", "admin"}))
	assert.Contains(t, env.out.String(), "Login successful")
	assert.Contains(t, env.out.String(), "admin (admin)")

	rec, err := env.storage.GetToken(ctx, storage.AccessTokenName)
	require.NoError(t, err)
	assert.Equal(t, "A1", rec.Value)
}

func TestRun_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// слишком короткий пароль: до сети не доходит
	t.Setenv(PasswordEnv, "123")
	err := env.cli.Run(ctx, []string{"login", "--login", "admin"})
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "password: must be at least 6 characters")

	t.Setenv(PasswordEnv, "wrong-password")
	err = env.cli.Run(ctx, []string{"login", "--login", "admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials.")
	assert.False(t, env.session.IsAuthenticated())
}

func TestRun_LoginPasswordFile(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(PasswordEnv, "")

	path := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(path, []byte("secret123\n"), 0o600))

	require.NoError(t, env.cli.Run(context.Background(), []string{"login", "--login", "admin", "--password-file", path}))
	assert.True(t, env.session.IsAuthenticated())
}

func TestRun_PostsListRemembersPagination(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	require.NoError(t, env.cli.Run(ctx, []string{"posts", "list", "--page", "2", "--per-page", "10"}))
	out := env.out.String()
	assert.Contains(t, out, "Post 11")
	assert.Contains(t, out, "Post 20")
	assert.NotContains(t, out, "Post 21")
	assert.Contains(t, out, "Page 2 of 4 (35 total, 10 per page)")

	saved, err := env.storage.GetPagination(ctx, pkgapi.ResourcePosts)
	require.NoError(t, err)
	assert.Equal(t, storage.Pagination{Page: 2, PerPage: 10}, saved)

	// следующий запуск без флагов продолжает с той же страницы
	env.out.Reset()
	require.NoError(t, env.cli.Run(ctx, []string{"posts", "list"}))
	require.Len(t, env.fake.queries, 2)
	assert.Equal(t, "page=2&per_page=10", env.fake.queries[1])
}

func TestRun_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	err := env.cli.Run(ctx, []string{"categories", "create", "--data", `{"description":"no name"}`})
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "name: is required")
	assert.Zero(t, env.fake.requests)

	err = env.cli.Run(ctx, []string{"categories", "create", "--data", `{"unknown":1}`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON payload")

	env.out.Reset()
	require.NoError(t, env.cli.Run(ctx, []string{"categories", "create", "--data", `{"name":"Aqidah"}`}))
	assert.Contains(t, env.out.String(), "Created category #9")
	assert.Contains(t, env.out.String(), "Aqidah")
}

func TestRun_RefreshOnExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	// сервер "забыл" A1: первый запрос получит 401, refresh R1 выдаст новый токен
	env.fake.mu.Lock()
	env.fake.access = "A2"
	env.fake.mu.Unlock()
	require.NoError(t, env.session.SetSession(ctx, "A1", "R1", nil))
	env.fake.mu.Lock()
	env.fake.refresh = "R1"
	env.fake.mu.Unlock()

	require.NoError(t, env.cli.Run(ctx, []string{"posts", "list"}))
	assert.Equal(t, "A2'", env.session.AccessToken())
}

func TestRun_SessionExpired(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	env.fake.mu.Lock()
	env.fake.access, env.fake.refresh = "other", "other"
	env.fake.mu.Unlock()

	err := env.cli.Run(ctx, []string{"posts", "list"})
	require.ErrorIs(t, err, api.ErrSessionExpired)
	assert.Contains(t, env.out.String(), "Run 'admin login' to sign in again")
	assert.False(t, env.session.IsAuthenticated())

	_, err = env.storage.GetToken(ctx, storage.RefreshTokenName)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestRun_StatusAndLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	require.NoError(t, env.cli.Run(ctx, []string{"status"}))
	assert.Contains(t, env.out.String(), "Status: Authenticated")
	assert.Contains(t, env.out.String(), "Role:  admin")

	require.NoError(t, env.cli.Run(ctx, []string{"logout"}))
	assert.False(t, env.session.IsAuthenticated())
	_, err := env.storage.GetToken(ctx, storage.AccessTokenName)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestRun_ImagesPreview(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	require.NoError(t, env.cli.Run(context.Background(), []string{"images", "preview", "cover.png"}))
	assert.Contains(t, env.out.String(), "/images/preview/cover.png")
}

func TestRun_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	err := env.cli.Run(context.Background(), []string{"posts", "get", "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}

func TestPrintUsage(t *testing.T) {
	mockIO := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {},
	}

	PrintUsage(mockIO)

	calls := mockIO.PrintlnCalls()
	require.NotEmpty(t, calls)
	assert.Contains(t, calls[0].A[0], "admin panel")

	hasResources := false
	for _, call := range calls {
		for _, arg := range call.A {
			if s, ok := arg.(string); ok && s == "Resources: posts, categories, tags, scholars, images" {
				hasResources = true
			}
		}
	}
	assert.True(t, hasResources)
}
