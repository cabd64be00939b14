package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"lexapi/internal/model"
)

var userCols = []string{"id", "username", "password_hash", "name", "image"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := &model.User{Username: "ana", PasswordHash: "$2a$10$hash", Name: "Ana"}

	rows := sqlmock.NewRows(userCols).
		AddRow(42, u.Username, u.PasswordHash, u.Name, "")

	mock.ExpectQuery("INSERT INTO usuario").
		WithArgs(u.Username, u.PasswordHash, u.Name, u.Image).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, u)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(42), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userCols).
			AddRow(42, "ana", "$2a$10$hash", "Ana", "")

		mock.ExpectQuery("SELECT (.+) FROM usuario WHERE username = ?").
			WithArgs("ana").
			WillReturnRows(rows)

		u, err := repo.FindByUsername(ctx, "ana")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, int64(42), u.ID)
	})

	t.Run("unknown username yields nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM usuario WHERE username = ?").
			WithArgs("ninguem").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByUsername(ctx, "ninguem")

		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestUserPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := &model.User{ID: 42, Username: "ana", PasswordHash: "$2a$10$hash", Name: "Ana"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE usuario SET").
			WithArgs(u.Username, u.PasswordHash, u.Name, u.Image, u.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, u))
	})

	t.Run("no row updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE usuario SET").
			WithArgs(u.Username, u.PasswordHash, u.Name, u.Image, u.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, u), sql.ErrNoRows)
	})
}

func TestUserPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM usuario WHERE id = ?").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
