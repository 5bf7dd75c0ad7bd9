package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/config"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Port = "8080"
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.CORSOrigins = "*"
	cfg.Server.MaxUploadMB = 1
	cfg.Storage.Backend = config.BackendLocal
	cfg.Storage.LocalLatency = "0s"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "VoiceOfChrist.API"
	cfg.JWT.Audience = "VoiceOfChrist.Client"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "Admin@123"
	cfg.Admin.Email = "admin@voiceofchrist.org"
	cfg.Admin.FullName = "System Administrator"
	return cfg
}

// testAPI serves the full router over the in-memory local backend
type testAPI struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWith(t, localConfig(t))
}

func newTestAPIWith(t *testing.T, cfg *config.Config) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps, err := BuildDependencies(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}
	if deps.DB != nil || deps.Store == nil {
		t.Fatalf("local backend should not open a database")
	}
	return &testAPI{t: t, router: NewRouter(cfg, deps.Controllers, deps.AuthMiddleware)}
}

func (a *testAPI) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("%s %s: response is not JSON: %s", method, path, w.Body.String())
		}
	}
	return w.Code, env
}

func (a *testAPI) login() {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/Auth/login", map[string]string{"username": "admin", "password": "Admin@123"})
	if code != http.StatusOK {
		a.t.Fatalf("login status = %d, want 200", code)
	}
	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil || resp.Token == "" {
		a.t.Fatalf("login response has no token: %s", env.Data)
	}
	a.token = resp.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func TestLocalBackendPublicRoutes(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/Branches", nil)
	if code != http.StatusOK || !env.Success {
		t.Fatalf("GET /api/Branches = %d", code)
	}
	branches := decode[[]struct {
		ID      int64             `json:"id"`
		Pastors []json.RawMessage `json:"pastors"`
	}](t, env.Data)
	if len(branches) != 3 {
		t.Fatalf("got %d branches, want 3", len(branches))
	}
	if len(branches[0].Pastors) != 2 {
		t.Errorf("main branch has %d pastors, want 2", len(branches[0].Pastors))
	}

	code, _ = api.do(http.MethodGet, "/api/Branches/999", nil)
	if code != http.StatusNotFound {
		t.Errorf("missing branch status = %d, want 404", code)
	}
	code, _ = api.do(http.MethodGet, "/api/Branches/abc", nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", code)
	}
	code, _ = api.do(http.MethodGet, "/api/Events/year/abc", nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad year status = %d, want 400", code)
	}

	code, env = api.do(http.MethodGet, "/api/health", nil)
	if code != http.StatusOK {
		t.Fatalf("health status = %d", code)
	}
	if health := decode[map[string]string](t, env.Data); health["storage"] != config.BackendLocal {
		t.Errorf("health storage = %q, want local", health["storage"])
	}
}

func TestLocalBackendLogin(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodPost, "/api/Auth/login", map[string]string{"username": "admin", "password": "wrong"})
	if code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", code)
	}
	if env.Success {
		t.Error("failed login reported success")
	}

	api.login()
	code, env = api.do(http.MethodGet, "/api/Auth/me", nil)
	if code != http.StatusOK {
		t.Fatalf("GET /api/Auth/me = %d", code)
	}
	if me := decode[map[string]interface{}](t, env.Data); me["username"] != "admin" {
		t.Errorf("me.username = %v, want admin", me["username"])
	}
}

func TestLocalBackendMutationsNeedToken(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/Branches"},
		{http.MethodDelete, "/api/Pastors/1"},
		{http.MethodPut, "/api/ChurchInfo/1"},
		{http.MethodGet, "/api/Admin/statistics"},
		{http.MethodGet, "/api/Auth/me"},
	} {
		if code, _ := api.do(tc.method, tc.path, nil); code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", tc.method, tc.path, code)
		}
	}
}

func TestLocalBackendBranchRules(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	body := map[string]interface{}{
		"id":      2,
		"name":    "Main Branch - Johannesburg",
		"address": "123 Church Street",
		"city":    "Johannesburg",
	}
	code, _ := api.do(http.MethodPut, "/api/Branches/1", body)
	if code != http.StatusBadRequest {
		t.Errorf("id mismatch status = %d, want 400", code)
	}

	code, env := api.do(http.MethodDelete, "/api/Admin/branches/1", nil)
	if code != http.StatusBadRequest {
		t.Errorf("purge of a branch with active pastors = %d, want 400", code)
	}
	if env.Error == nil || env.Error.Message == "" {
		t.Error("purge refusal carries no explanation")
	}

	code, env = api.do(http.MethodGet, "/api/Admin/statistics", nil)
	if code != http.StatusOK {
		t.Fatalf("statistics status = %d", code)
	}
	if stats := decode[map[string]int](t, env.Data); stats["totalBranches"] != 3 {
		t.Errorf("totalBranches = %d, want 3", stats["totalBranches"])
	}
}

func TestLocalBackendTestimonyModeration(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodPost, "/api/Testimonies", map[string]string{
		"name":      "  Thandi  ",
		"testimony": "The Lord carried our family through a hard year.",
	})
	if code != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201", code)
	}
	submitted := decode[struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		IsApproved bool   `json:"isApproved"`
	}](t, env.Data)
	if submitted.IsApproved {
		t.Error("public submission was approved")
	}
	if submitted.Name != "Thandi" {
		t.Errorf("name = %q, want trimmed", submitted.Name)
	}

	type item struct {
		ID int64 `json:"id"`
	}
	_, env = api.do(http.MethodGet, "/api/Testimonies", nil)
	for _, it := range decode[[]item](t, env.Data) {
		if it.ID == submitted.ID {
			t.Fatal("unapproved testimony is public")
		}
	}

	approvePath := "/api/Admin/testimonies/" + strconv.FormatInt(submitted.ID, 10) + "/approve"
	if code, _ := api.do(http.MethodPost, approvePath, nil); code != http.StatusUnauthorized {
		t.Errorf("approve without token = %d, want 401", code)
	}

	api.login()
	if code, _ := api.do(http.MethodPost, approvePath, nil); code != http.StatusOK {
		t.Fatalf("approve status = %d, want 200", code)
	}

	_, env = api.do(http.MethodGet, "/api/Testimonies", nil)
	approved := decode[[]item](t, env.Data)
	if len(approved) == 0 || approved[0].ID != submitted.ID {
		t.Errorf("approved testimony is not listed first: %+v", approved)
	}
}

func TestLocalBackendEditKeepsApproval(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	code, env := api.do(http.MethodPut, "/api/Admin/testimonies/1", map[string]interface{}{
		"testimony":  "The community embraced me and I found healing.",
		"isApproved": false,
	})
	if code != http.StatusOK {
		t.Fatalf("edit status = %d, want 200", code)
	}
	edited := decode[struct {
		Testimony  string `json:"testimony"`
		IsApproved bool   `json:"isApproved"`
	}](t, env.Data)
	if !edited.IsApproved {
		t.Fatal("editing a testimony withdrew its approval")
	}

	_, env = api.do(http.MethodGet, "/api/Testimonies", nil)
	if got := len(decode[[]json.RawMessage](t, env.Data)); got != 4 {
		t.Errorf("public testimonies = %d, want 4", got)
	}
}

func TestLocalBackendLatencyStopsOnCancel(t *testing.T) {
	cfg := localConfig(t)
	cfg.Storage.LocalLatency = "1h"
	api := newTestAPIWith(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/Events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	start := time.Now()
	api.router.ServeHTTP(w, req)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancelled request waited %v", elapsed)
	}
	if w.Code != middleware.StatusClientClosedRequest {
		t.Errorf("status = %d, want %d", w.Code, middleware.StatusClientClosedRequest)
	}
}
