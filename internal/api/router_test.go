package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/menumesa/pos-system/internal/api/handler"
	"github.com/menumesa/pos-system/internal/api/middleware"
	"github.com/menumesa/pos-system/internal/core/domain"
	"github.com/menumesa/pos-system/internal/core/password"
	"github.com/menumesa/pos-system/internal/core/ports"
	"github.com/menumesa/pos-system/internal/core/service"
	"github.com/menumesa/pos-system/internal/core/token"
)

// memoryUserRepo is an in-memory credential store for end-to-end tests.
type memoryUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func copyUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string, includePassword bool) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := copyUser(u)
			if !includePassword {
				found.PasswordHash = ""
			}
			return found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := copyUser(u)
	found.PasswordHash = ""
	return found, nil
}

func (r *memoryUserRepo) FindAll(_ context.Context, page, limit int) ([]domain.User, int64, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		found := copyUser(u)
		found.PasswordHash = ""
		all = append(all, *found)
	}
	start := min((page-1)*limit, len(all))
	end := min(start+limit, len(all))
	return all[start:end], int64(len(r.users)), nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := copyUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[created.ID] = copyUser(created)
	return created, nil
}

func (r *memoryUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.RestaurantName != nil {
		u.RestaurantName = *update.RestaurantName
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	u.UpdatedAt = time.Now().UTC()
	found := copyUser(u)
	found.PasswordHash = ""
	return found, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type testEnv struct {
	repo   *memoryUserRepo
	issuer *token.Issuer
	router http.Handler
}

func newTestEnv() *testEnv {
	repo := newMemoryUserRepo()
	hasher := password.NewHasher(bcrypt.MinCost)
	issuer := token.NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	log := zerolog.Nop()

	router := NewRouter(Deps{
		Logger:      log,
		AuthHandler: handler.NewAuthHandler(service.NewAuthService(repo, hasher, issuer, log)),
		UserHandler: handler.NewUserHandler(service.NewUserService(repo, hasher, log)),
		Auth:        middleware.Auth(issuer),
	})

	return &testEnv{repo: repo, issuer: issuer, router: router}
}

func (env *testEnv) do(t *testing.T, method, path, body, bearer string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var parsed map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid json response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, parsed
}

func TestRouter_RegisterThenLogin(t *testing.T) {
	env := newTestEnv()

	rec, resp := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"Passw0rd","name":"Alice"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	user := resp["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password present in register response")
	}
	tokens := resp["tokens"].(map[string]any)
	regAccess := tokens["accessToken"].(string)
	regRefresh := tokens["refreshToken"].(string)
	if regAccess == "" || regRefresh == "" || regAccess == regRefresh {
		t.Fatalf("expected two distinct tokens, got %q / %q", regAccess, regRefresh)
	}

	rec, resp = env.do(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"Passw0rd"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	loginAccess := resp["tokens"].(map[string]any)["accessToken"].(string)
	if loginAccess == "" || loginAccess == regAccess {
		t.Fatalf("expected a new access token on login")
	}
}

func TestRouter_DuplicateRegisterIsConflict(t *testing.T) {
	env := newTestEnv()

	rec, _ := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"Passw0rd","name":"Bob"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", rec.Code)
	}

	rec, resp := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"Passw0rd","name":"Bobby"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if resp["error"] != "email already registered" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestRouter_LoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv()

	if rec, _ := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"carol@example.com","password":"Passw0rd","name":"Carol"}`, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	wrongPw, wrongPwBody := env.do(t, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"WrongPw99"}`, "")
	noUser, noUserBody := env.do(t, http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"WrongPw99"}`, "")

	if wrongPw.Code != http.StatusUnauthorized || noUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, noUser.Code)
	}
	if wrongPwBody["error"] != noUserBody["error"] {
		t.Fatalf("error bodies differ: %+v vs %+v", wrongPwBody, noUserBody)
	}
}

func TestRouter_MeRequiresToken(t *testing.T) {
	env := newTestEnv()

	rec, resp := env.do(t, http.MethodGet, "/users/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resp["error"] != "no token provided" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestRouter_MeWithToken(t *testing.T) {
	env := newTestEnv()

	_, resp := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"dana@example.com","password":"Passw0rd","name":"Dana"}`, "")
	access := resp["tokens"].(map[string]any)["accessToken"].(string)

	rec, me := env.do(t, http.MethodGet, "/users/me", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if me["email"] != "dana@example.com" {
		t.Fatalf("unexpected profile: %+v", me)
	}
}

func TestRouter_AdminRouteForbiddenForUserRole(t *testing.T) {
	env := newTestEnv()

	_, resp := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"eve@example.com","password":"Passw0rd","name":"Eve"}`, "")
	access := resp["tokens"].(map[string]any)["accessToken"].(string)

	rec, body := env.do(t, http.MethodGet, "/users", "", access)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body["error"] != "insufficient permission" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestRouter_AdminRouteAllowsAdmin(t *testing.T) {
	env := newTestEnv()

	_, resp := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"frank@example.com","password":"Passw0rd","name":"Frank"}`, "")
	userID := resp["user"].(map[string]any)["id"].(string)

	// Promote, then mint a token carrying the admin role.
	env.repo.users[userID].Role = domain.RoleAdmin
	access, err := env.issuer.IssueAccess(env.repo.users[userID])
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, page := env.do(t, http.MethodGet, "/users?page=1&limit=10", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := page["pagination"]; !ok {
		t.Fatalf("expected pagination metadata: %+v", page)
	}
}

func TestRouter_RefreshFlow(t *testing.T) {
	env := newTestEnv()

	_, resp := env.do(t, http.MethodPost, "/auth/register",
		`{"email":"gail@example.com","password":"Passw0rd","name":"Gail"}`, "")
	userID := resp["user"].(map[string]any)["id"].(string)
	refresh := resp["tokens"].(map[string]any)["refreshToken"].(string)

	// Role changes after the refresh token was issued must show up in the
	// next access token.
	env.repo.users[userID].Role = domain.RoleAdmin

	rec, body := env.do(t, http.MethodPost, "/auth/refresh",
		`{"refreshToken":"`+refresh+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	ident, err := env.issuer.VerifyAccess(body["accessToken"].(string))
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if ident.Role != domain.RoleAdmin {
		t.Fatalf("expected current role admin in refreshed token, got %s", ident.Role)
	}
}

func TestRouter_RefreshWithoutTokenIsBadRequest(t *testing.T) {
	env := newTestEnv()

	rec, _ := env.do(t, http.MethodPost, "/auth/refresh", `{}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_LogoutIsNoOp(t *testing.T) {
	env := newTestEnv()

	rec, _ := env.do(t, http.MethodPost, "/auth/logout", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_Liveness(t *testing.T) {
	env := newTestEnv()

	rec, body := env.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
