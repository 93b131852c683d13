package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/menumesa/pos-system/internal/core/domain"
	"github.com/menumesa/pos-system/internal/core/password"
	"github.com/menumesa/pos-system/internal/core/ports"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, password.NewHasher(bcrypt.MinCost), zerolog.Nop())
}

func seedUser(t *testing.T, svc *UserService, email string) *domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    email,
		Password: "Passw0rd",
		Name:     "Seeded",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func TestUserService_Create_DefaultsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "New@Example.com",
		Password: "Passw0rd",
		Name:     "New User",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.Email != "new@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	seedUser(t, svc, "taken@example.com")

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "taken@example.com",
		Password: "Passw0rd",
		Name:     "Dup",
	}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	if _, err := svc.GetByID(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		seedUser(t, svc, email)
	}

	page, err := svc.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page.Users))
	}
	p := page.Pagination
	if p.Total != 3 || p.TotalPages != 2 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if !p.HasNextPage || p.HasPrevPage {
		t.Fatalf("unexpected page flags: %+v", p)
	}

	last, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(last.Users) != 1 {
		t.Fatalf("expected 1 user on last page, got %d", len(last.Users))
	}
	if last.Pagination.HasNextPage || !last.Pagination.HasPrevPage {
		t.Fatalf("unexpected page flags: %+v", last.Pagination)
	}
}

func TestUserService_List_ClampsLimit(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	seedUser(t, svc, "a@example.com")

	page, err := svc.List(context.Background(), 0, 500)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Pagination.Page != 1 || page.Pagination.Limit != maxPageLimit {
		t.Fatalf("expected clamped page window, got %+v", page.Pagination)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	user := seedUser(t, svc, "rehash@example.com")

	before := repo.users[user.ID].PasswordHash
	newPassword := "NewPassw0rd"
	if _, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Password: &newPassword}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	after := repo.users[user.ID].PasswordHash
	if after == before || after == newPassword {
		t.Fatalf("expected password re-hash, before=%q after=%q", before, after)
	}
	if bcrypt.CompareHashAndPassword([]byte(after), []byte(newPassword)) != nil {
		t.Fatalf("stored hash does not match new password")
	}
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	seedUser(t, svc, "held@example.com")
	user := seedUser(t, svc, "mover@example.com")

	conflicting := "held@example.com"
	if _, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Email: &conflicting}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Re-submitting the user's own email is not a conflict.
	same := "mover@example.com"
	if _, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Email: &same}); err != nil {
		t.Fatalf("own email rejected: %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	user := seedUser(t, svc, "bye@example.com")

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
