package repository

import (
	"context"
	"regexp"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUserCreate_DuplicateEmailBecomesErrEmailTaken(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewUserGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	mock.ExpectRollback()

	err := r.Create(context.Background(), &model.User{
		Email:        "taro@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
		IsActive:     true,
	})

	assert.ErrorIs(t, err, repo.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchLastLogin_UnknownUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewUserGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "last_login_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := r.TouchLastLogin(context.Background(), 99)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
