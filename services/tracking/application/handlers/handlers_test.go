package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ghuser/hourglass/pkg/app"
	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/telemetry"
	"github.com/ghuser/hourglass/services/tracking/application/api"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	appsvcs "github.com/ghuser/hourglass/services/tracking/application/services"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

const callerPassword = "correct-horse-battery"

type env struct {
	projects  *fakeProjects
	tasks     *fakeTasks
	members   *fakeMembers
	entries   *fakeEntries
	roles     *fakeRoles
	users     *fakeUsers
	userTasks *fakeUserTasks

	tokens *auth.TokenIssuer
	store  *revokingStore
	reader *sdkmetric.ManualReader
	router http.Handler
	caller *models.User
	token  string
}

// revokingStore records RevokeUser calls on top of a cookie store.
type revokingStore struct {
	sessions.Store
	revoked []uuid.UUID
}

func (s *revokingStore) RevokeUser(_ context.Context, userID uuid.UUID) error {
	s.revoked = append(s.revoked, userID)
	return nil
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		projects:  newFakeProjects(),
		tasks:     newFakeTasks(),
		members:   newFakeMembers(),
		entries:   newFakeEntries(),
		roles:     newFakeRoles(),
		users:     newFakeUsers(),
		userTasks: newFakeUserTasks(),
		tokens:    auth.NewTokenIssuer("test-secret-must-be-long-enough-32b", "hourglass", time.Hour),
		reader:    sdkmetric.NewManualReader(),
		store: &revokingStore{Store: sessions.NewCookieStore(
			[]byte("test-auth-key-must-be-32-bytes!!"),
			[]byte("test-enc-key-must-be-32-bytes!!!"),
		)},
	}

	hasher := auth.NewBcryptHasher(4)
	svcs := appsvcs.Build(appsvcs.Deps{
		Deps: commands.Deps{
			Projects:     e.projects,
			ProjectRepo:  e.projects,
			Tasks:        e.tasks,
			TaskRepo:     e.tasks,
			Members:      e.members,
			MemberRepo:   e.members,
			Entries:      e.entries,
			EntryRepo:    e.entries,
			Roles:        e.roles,
			RoleRepo:     e.roles,
			Users:        e.users,
			UserRepo:     e.users,
			UserTasks:    e.userTasks,
			UserTaskRepo: e.userTasks,
			Hasher:       hasher,
		},
		Tokens: e.tokens,
		Log:    logger.Nop(),
	})

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(e.reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := telemetry.NewCommandMetrics(mp)
	if err != nil {
		t.Fatalf("NewCommandMetrics: %v", err)
	}

	a := &app.Application{
		Logger:       logger.Nop(),
		SessionStore: e.store,
		Tokens:       e.tokens,
		Metrics:      metrics,
	}
	r := chi.NewRouter()
	api.Mount(r, svcs, a)
	e.router = r

	hash, err := hasher.Hash(callerPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	e.caller = models.NewUser("caller@example.com", "Cal", "Ler", hash)
	e.users.seed(e.caller)
	e.token, _, err = e.tokens.Issue(e.caller.ID.UUID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return e
}

// do sends an authenticated request. body is JSON-encoded unless it is a string.
func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := newRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// anonymous sends a request without credentials.
func (e *env) anonymous(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, newRequest(t, method, path, body))
	return w
}

func newRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

type errorBody struct {
	Error string  `json:"error"`
	Kind  string  `json:"kind"`
	ID    *string `json:"id"`
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestRequiresAuthentication(t *testing.T) {
	e := newEnv(t)

	w := e.anonymous(t, http.MethodGet, "/projects", nil)
	expectStatus(t, w, http.StatusUnauthorized)

	w = e.anonymous(t, http.MethodPost, "/projects", map[string]string{"name": "Apollo"})
	expectStatus(t, w, http.StatusUnauthorized)
	if len(e.projects.rows) != 0 {
		t.Fatal("unauthenticated request must not create a project")
	}
}

func TestCreateProject(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/projects", map[string]string{"name": "Apollo", "description": "moon"})
	expectStatus(t, w, http.StatusCreated)
	got := decode[map[string]any](t, w)
	if got["name"] != "Apollo" || got["description"] != "moon" {
		t.Fatalf("unexpected body: %v", got)
	}
	if _, err := uuid.Parse(got["id"].(string)); err != nil {
		t.Fatalf("expected a uuid id, got %v", got["id"])
	}

	w = e.do(t, http.MethodPost, "/projects", map[string]string{"name": "Apollo"})
	expectStatus(t, w, http.StatusConflict)
	if body := decode[errorBody](t, w); body.Kind != "already_exists" {
		t.Fatalf("expected already_exists, got %+v", body)
	}
	if len(e.projects.rows) != 1 {
		t.Fatalf("expected one stored project, got %d", len(e.projects.rows))
	}
}

func TestCreateProject_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"description":"x"}`, http.StatusUnprocessableEntity},
		{"blank name", `{"name":"   "}`, http.StatusUnprocessableEntity},
		{"unknown field", `{"name":"Apollo","owner":"x"}`, http.StatusBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			w := e.do(t, http.MethodPost, "/projects", tt.body)
			expectStatus(t, w, tt.want)
			if len(e.projects.rows) != 0 {
				t.Fatal("invalid request must not create a project")
			}
		})
	}
}

func TestGetProject(t *testing.T) {
	e := newEnv(t)
	p := models.NewProject("Apollo", "")
	e.projects.seed(p)

	w := e.do(t, http.MethodGet, "/projects/"+p.ID.String(), nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[map[string]any](t, w); got["name"] != "Apollo" {
		t.Fatalf("unexpected body: %v", got)
	}

	missing := uuid.New()
	w = e.do(t, http.MethodGet, "/projects/"+missing.String(), nil)
	expectStatus(t, w, http.StatusNotFound)
	body := decode[errorBody](t, w)
	if body.Kind != "not_found" || body.ID == nil || *body.ID != missing.String() {
		t.Fatalf("unexpected error body: %+v", body)
	}

	w = e.do(t, http.MethodGet, "/projects/not-a-uuid", nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestGetUser(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/users/"+e.caller.ID.String(), nil)
	expectStatus(t, w, http.StatusOK)
	got := decode[map[string]any](t, w)
	if got["email"] != e.caller.Email {
		t.Fatalf("unexpected body: %v", got)
	}
	if _, leaked := got["password_hash"]; leaked {
		t.Fatal("password hash must not be returned")
	}

	missing := uuid.New()
	w = e.do(t, http.MethodGet, "/users/"+missing.String(), nil)
	expectStatus(t, w, http.StatusNotFound)
	if body := decode[errorBody](t, w); body.Kind != "not_found" || body.ID == nil || *body.ID != missing.String() {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestDeleteProject(t *testing.T) {
	e := newEnv(t)
	p := models.NewProject("Apollo", "")
	e.projects.seed(p)

	w := e.do(t, http.MethodDelete, "/projects/"+p.ID.String(), nil)
	expectStatus(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}

	w = e.do(t, http.MethodDelete, "/projects/"+p.ID.String(), nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestUpdateMember_OtherProject(t *testing.T) {
	e := newEnv(t)
	p1 := models.NewProject("Apollo", "")
	p2 := models.NewProject("Gemini", "")
	e.projects.seed(p1, p2)
	m := models.NewProjectUser(p1.ID, e.caller.ID, 5000, false)
	e.members.seed(m)

	body := map[string]any{"hourly_rate_cents": 9000, "is_manager": true}

	w := e.do(t, http.MethodPut, "/projects/"+p2.ID.String()+"/users/"+m.ID.String(), body)
	expectStatus(t, w, http.StatusNotFound)
	if e.members.updates != 0 {
		t.Fatal("membership of another project must not be updated")
	}

	w = e.do(t, http.MethodPut, "/projects/"+p1.ID.String()+"/users/"+m.ID.String(), body)
	expectStatus(t, w, http.StatusOK)
	got := decode[map[string]any](t, w)
	if got["hourly_rate_cents"] != float64(9000) || got["is_manager"] != true {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestCreateTimeEntry_DefaultsToCaller(t *testing.T) {
	e := newEnv(t)
	p := models.NewProject("Apollo", "")
	e.projects.seed(p)

	w := e.do(t, http.MethodPost, "/time-entries", map[string]any{
		"project_id": p.ID.UUID,
		"start_time": at(9, 0),
		"end_time":   at(10, 0),
		"minutes":    60,
	})
	expectStatus(t, w, http.StatusCreated)
	got := decode[map[string]any](t, w)
	if got["user_id"] != e.caller.ID.String() {
		t.Fatalf("expected entry for caller %s, got %v", e.caller.ID, got["user_id"])
	}
	if _, ok := got["project_task_id"]; ok {
		t.Fatalf("expected no project_task_id, got %v", got["project_task_id"])
	}
}

func TestCreateTimeEntry_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		project  func(p *models.Project) uuid.UUID
		wantCode int
		wantKind string
	}{
		{
			name:     "end before start",
			start:    at(14, 0),
			end:      at(13, 0),
			project:  func(p *models.Project) uuid.UUID { return p.ID.UUID },
			wantCode: http.StatusConflict,
			wantKind: "invariant_violation",
		},
		{
			name:     "overlaps existing entry",
			start:    at(9, 30),
			end:      at(10, 30),
			project:  func(p *models.Project) uuid.UUID { return p.ID.UUID },
			wantCode: http.StatusConflict,
			wantKind: "invariant_violation",
		},
		{
			name:     "unknown project",
			start:    at(11, 0),
			end:      at(12, 0),
			project:  func(*models.Project) uuid.UUID { return uuid.New() },
			wantCode: http.StatusNotFound,
			wantKind: "related_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			p := models.NewProject("Apollo", "")
			e.projects.seed(p)

			w := e.do(t, http.MethodPost, "/time-entries", map[string]any{
				"project_id": p.ID.UUID,
				"start_time": at(9, 0),
				"end_time":   at(10, 0),
			})
			expectStatus(t, w, http.StatusCreated)

			w = e.do(t, http.MethodPost, "/time-entries", map[string]any{
				"project_id": tt.project(p),
				"start_time": tt.start,
				"end_time":   tt.end,
			})
			expectStatus(t, w, tt.wantCode)
			if body := decode[errorBody](t, w); body.Kind != tt.wantKind {
				t.Fatalf("expected kind %q, got %+v", tt.wantKind, body)
			}
			if len(e.entries.rows) != 1 {
				t.Fatalf("rejected entry must not be stored, have %d", len(e.entries.rows))
			}
		})
	}
}

func TestQueryFaultHidesCause(t *testing.T) {
	e := newEnv(t)
	p := models.NewProject("Apollo", "")
	e.projects.seed(p)
	e.entries.queryErr = errors.New("connection reset by peer")

	w := e.do(t, http.MethodPost, "/time-entries", map[string]any{
		"project_id": p.ID.UUID,
		"start_time": at(9, 0),
		"end_time":   at(10, 0),
	})
	expectStatus(t, w, http.StatusInternalServerError)
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Fatalf("fault cause leaked to the client: %s", w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/users/"+e.caller.ID.String()+"/time-entries", nil)
	expectStatus(t, w, http.StatusInternalServerError)
}

func TestCreateUser_IsPublic(t *testing.T) {
	e := newEnv(t)

	w := e.anonymous(t, http.MethodPost, "/users", map[string]string{
		"email":      "ada@example.com",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"password":   "analytical-engine",
	})
	expectStatus(t, w, http.StatusCreated)
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response must not carry the password: %s", w.Body.String())
	}

	w = e.anonymous(t, http.MethodPost, "/users", map[string]string{
		"email":      "ada@example.com",
		"first_name": "Ada",
		"last_name":  "Byron",
		"password":   "analytical-engine",
	})
	expectStatus(t, w, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)

	w := e.anonymous(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    e.caller.Email,
		"password": "wrong-password",
	})
	expectStatus(t, w, http.StatusUnauthorized)

	w = e.anonymous(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    e.caller.Email,
		"password": callerPassword,
	})
	expectStatus(t, w, http.StatusOK)
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("expected a session cookie")
	}
	body := decode[struct {
		Token string `json:"token"`
	}](t, w)

	userID, err := e.tokens.Parse(body.Token)
	if err != nil || userID != e.caller.ID.UUID {
		t.Fatalf("expected a token for %s, got %s (%v)", e.caller.ID, userID, err)
	}

	// the session cookie alone authenticates
	req := newRequest(t, http.MethodGet, "/users/"+e.caller.ID.String(), nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)
}

func TestCommandMetrics(t *testing.T) {
	e := newEnv(t)

	e.do(t, http.MethodPost, "/roles", map[string]string{"name": "admin"})
	e.do(t, http.MethodPost, "/roles", map[string]string{"name": "admin"})

	var rm metricdata.ResourceMetrics
	if err := e.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "tracking.commands" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", md.Data)
			}
			for _, dp := range sum.DataPoints {
				cmd, _ := dp.Attributes.Value(attribute.Key("command"))
				outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
				counts[cmd.AsString()+"/"+outcome.AsString()] += dp.Value
			}
		}
	}

	if counts["create_role/success"] != 1 {
		t.Errorf("create_role/success: got %d, want 1", counts["create_role/success"])
	}
	if counts["create_role/rejected"] != 1 {
		t.Errorf("create_role/rejected: got %d, want 1", counts["create_role/rejected"])
	}
}

func TestDeleteUser_RevokesSessions(t *testing.T) {
	e := newEnv(t)
	other := models.NewUser("other@example.com", "Oth", "Er", "hash")
	e.users.seed(other)

	if w := e.do(t, http.MethodDelete, "/users/"+other.ID.String(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body)
	}
	if len(e.store.revoked) != 1 || e.store.revoked[0] != other.ID.UUID {
		t.Fatalf("expected sessions of %s revoked, got %v", other.ID, e.store.revoked)
	}

	if w := e.do(t, http.MethodDelete, "/users/"+other.ID.String(), nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
	if len(e.store.revoked) != 1 {
		t.Fatalf("rejected delete must not revoke, got %v", e.store.revoked)
	}
}
