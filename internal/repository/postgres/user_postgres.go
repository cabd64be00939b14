package postgres

import (
	"context"
	"database/sql"

	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO usuario (username, password_hash, name, image)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, username, password_hash, name, COALESCE(image, '')
	`
	row := r.db.QueryRowContext(ctx, q, u.Username, u.PasswordHash, u.Name, u.Image)
	return scanUser(row)
}

func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT id, username, password_hash, name, COALESCE(image, '') FROM usuario WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT id, username, password_hash, name, COALESCE(image, '') FROM usuario WHERE username = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserPostgres) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, username, password_hash, name, COALESCE(image, '') FROM usuario ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Image); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

func (r *UserPostgres) Update(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE usuario
		SET username = $1, password_hash = $2, name = $3, image = NULLIF($4, '')
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.PasswordHash, u.Name, u.Image, u.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *UserPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM usuario WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Image); err != nil {
		return nil, err
	}
	return &u, nil
}
