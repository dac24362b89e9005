package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"jewelbox/internal/config"
	"jewelbox/internal/domain"
	"jewelbox/internal/events"
	"jewelbox/internal/http/handlers"
	"jewelbox/internal/payment"
	"jewelbox/internal/repos"
)

const testSecret = "test-secret"

type testEnv struct {
	app  *fiber.App
	db   *repos.DB
	cfg  *config.Config
	pay  *payment.Stub
	deps *handlers.Deps
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.BodyLimit = 1 << 20
	cfg.Server.LoginRate = 100
	cfg.Server.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost
	return cfg
}

// newEnv builds the real app on an in-memory store. tweak may adjust the
// config before the app is assembled.
func newEnv(t *testing.T, pub events.Publisher, tweak func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	if tweak != nil {
		tweak(cfg)
	}
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if pub == nil {
		pub = events.Nop{}
	}
	stub := &payment.Stub{Succeed: true}
	deps := handlers.NewDeps(db, cfg, stub, pub)
	return &testEnv{app: handlers.NewApp(cfg, deps), db: db, cfg: cfg, pay: stub, deps: deps}
}

type apiResp struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Path    string          `json:"path"`
}

// call sends body as JSON (a string is sent verbatim) and decodes the envelope.
func (e *testEnv) call(t *testing.T, method, path string, body any, token string) (int, apiResp) {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out apiResp
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: non-JSON body %q", method, path, raw)
	}
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, r apiResp) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(r.Data, &v); err != nil {
		t.Fatalf("decode data %s: %v", r.Data, err)
	}
	return v
}

type session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (e *testEnv) signup(t *testing.T, email string) session {
	t.Helper()
	code, r := e.call(t, "POST", "/api/auth/signup", map[string]string{"email": email, "password": "secret1", "name": "Test"}, "")
	if code != fiber.StatusCreated {
		t.Fatalf("signup %s: %d %s", email, code, r.Message)
	}
	return decode[session](t, r)
}

func (e *testEnv) productID(t *testing.T, name string) int64 {
	t.Helper()
	_, r := e.call(t, "GET", "/api/products", nil, "")
	for _, p := range decode[[]domain.Product](t, r) {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("product %q not listed", name)
	return 0
}
