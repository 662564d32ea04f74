package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

var userRowColumns = []string{
	"id", "last_name", "first_name", "email", "phone", "role", "password_hash",
	"active", "verified", "verification_token", "verification_expires", "created_at",
}

func userRow(id int64, email string, now time.Time) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(userRowColumns).
		AddRow(id, "Doe", "Jane", email, "0600000000", model.RoleClient, "hash", true, false, "tok", &now, now)
}

func TestUserRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	now := time.Now()
	user := &model.User{
		LastName: "Doe", FirstName: "Jane", Email: "jane@example.com", Phone: "0600000000",
		Role: model.RoleClient, PasswordHash: "hash", Active: true, VerificationToken: "tok", VerificationExpires: &now,
	}
	args := []any{"Doe", "Jane", "jane@example.com", "0600000000", model.RoleClient, "hash", true, false, "tok", &now}

	mock.ExpectQuery("INSERT INTO users").WithArgs(args...).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))
	created, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 || created.Email != "jane@example.com" || user.ID != 0 {
		t.Fatalf("unexpected user: %+v", created)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs(args...).WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), user); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs(args...).WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), user); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}
	now := time.Now()

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(userRow(1, "jane@example.com", now))
	if u, err := repo.GetByID(context.Background(), 1); err != nil || u.Email != "jane@example.com" || u.VerificationToken != "tok" {
		t.Fatalf("unexpected user: %+v err=%v", u, err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("jane@example.com").WillReturnRows(userRow(1, "jane@example.com", now))
	if _, err := repo.GetByEmail(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM users WHERE phone=").WithArgs("0700").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByPhone(context.Background(), "0700"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE verification_token=").WithArgs("tok").WillReturnError(errors.New("boom"))
	if _, err := repo.GetByVerificationToken(context.Background(), "tok"); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected raw error, got %v", err)
	}

	if _, err := repo.GetByVerificationToken(context.Background(), ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("empty token must not match, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryMutations(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}
	now := time.Now()

	user := &model.User{ID: 4, LastName: "Doe", FirstName: "Jane", Email: "j@x", Phone: "1", Role: model.RoleCook, PasswordHash: "h", Active: true, Verified: true}
	mock.ExpectExec("UPDATE users SET last_name=").
		WithArgs("Doe", "Jane", "j@x", "1", model.RoleCook, "h", true, true, "", (*time.Time)(nil), int64(4)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET last_name=").
		WithArgs("Doe", "Jane", "j@x", "1", model.RoleCook, "h", true, true, "", (*time.Time)(nil), int64(4)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.Update(context.Background(), user); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("UPDATE users SET active=").WithArgs(false, int64(1)).WillReturnRows(userRow(1, "a@b", now))
	if _, err := repo.SetActive(context.Background(), 1, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("UPDATE users SET active=").WithArgs(true, int64(9)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.SetActive(context.Background(), 9, true); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM users WHERE id=").WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM users WHERE id=").WithArgs(int64(2)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users ORDER BY id LIMIT 10 OFFSET 20").WillReturnRows(userRow(1, "a@b", now).AddRow(
		int64(2), "Roe", "Rick", "r@b", "2", model.RoleWaiter, "hash", true, true, "", nil, now))
	users, err := repo.List(context.Background(), 10, 20)
	if err != nil || len(users) != 2 || users[1].Role != model.RoleWaiter {
		t.Fatalf("unexpected users: %+v err=%v", users, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
