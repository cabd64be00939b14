package postgres

import (
	"context"
	"database/sql"

	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func (r *DocumentPostgres) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documento (documento_nome, documento_localizacao, documento_url, cliente_id, consulta_id)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
		RETURNING id, documento_nome, COALESCE(documento_localizacao, ''), COALESCE(documento_url, ''), cliente_id, consulta_id
	`
	row := r.db.QueryRowContext(ctx, q, d.Nome, d.Localizacao, d.URL, d.ClienteID, d.ConsultaID)
	return scanDocument(row)
}

func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `
		SELECT id, documento_nome, COALESCE(documento_localizacao, ''), COALESCE(documento_url, ''), cliente_id, consulta_id
		FROM documento
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	const q = `
		SELECT id, documento_nome, COALESCE(documento_localizacao, ''), COALESCE(documento_url, ''), cliente_id, consulta_id
		FROM documento
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Nome, &d.Localizacao, &d.URL, &d.ClienteID, &d.ConsultaID); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *DocumentPostgres) Update(ctx context.Context, d *model.Document) error {
	const q = `
		UPDATE documento
		SET documento_nome = $1, documento_localizacao = NULLIF($2, ''), documento_url = NULLIF($3, ''), cliente_id = $4, consulta_id = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, q, d.Nome, d.Localizacao, d.URL, d.ClienteID, d.ConsultaID, d.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documento WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanDocument(row *sql.Row) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(&d.ID, &d.Nome, &d.Localizacao, &d.URL, &d.ClienteID, &d.ConsultaID); err != nil {
		return nil, err
	}
	return &d, nil
}
