package postgres

import (
	"context"
	"database/sql"

	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// FilingPostgres is a PostgreSQL implementation of repository.FilingRepository.
type FilingPostgres struct {
	db *sql.DB
}

// NewFilingPostgres creates a new FilingPostgres repository.
func NewFilingPostgres(db *sql.DB) *FilingPostgres {
	return &FilingPostgres{db: db}
}

var _ repository.FilingRepository = (*FilingPostgres)(nil)

func (r *FilingPostgres) Create(ctx context.Context, f *model.Filing) (*model.Filing, error) {
	const q = `
		INSERT INTO peca_processual (nome_peca, categoria, documento_localizacao, documento_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, nome_peca, categoria, COALESCE(documento_localizacao, ''), COALESCE(documento_url, '')
	`
	row := r.db.QueryRowContext(ctx, q, f.NomePeca, f.Categoria, f.Localizacao, f.URL)
	return scanFiling(row)
}

func (r *FilingPostgres) FindByID(ctx context.Context, id int64) (*model.Filing, error) {
	const q = `
		SELECT id, nome_peca, categoria, COALESCE(documento_localizacao, ''), COALESCE(documento_url, '')
		FROM peca_processual
		WHERE id = $1
	`
	return scanFiling(r.db.QueryRowContext(ctx, q, id))
}

func (r *FilingPostgres) List(ctx context.Context) ([]model.Filing, error) {
	const q = `
		SELECT id, nome_peca, categoria, COALESCE(documento_localizacao, ''), COALESCE(documento_url, '')
		FROM peca_processual
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Filing, 0)
	for rows.Next() {
		var f model.Filing
		if err := rows.Scan(&f.ID, &f.NomePeca, &f.Categoria, &f.Localizacao, &f.URL); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *FilingPostgres) Update(ctx context.Context, f *model.Filing) error {
	const q = `
		UPDATE peca_processual
		SET nome_peca = $1, categoria = $2, documento_localizacao = NULLIF($3, ''), documento_url = NULLIF($4, '')
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, q, f.NomePeca, f.Categoria, f.Localizacao, f.URL, f.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *FilingPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM peca_processual WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanFiling(row *sql.Row) (*model.Filing, error) {
	var f model.Filing
	if err := row.Scan(&f.ID, &f.NomePeca, &f.Categoria, &f.Localizacao, &f.URL); err != nil {
		return nil, err
	}
	return &f, nil
}
