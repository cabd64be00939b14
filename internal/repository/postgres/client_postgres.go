package postgres

import (
	"context"
	"database/sql"

	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ClientPostgres struct {
	db *sql.DB
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO cliente (nome_cliente, cpf_cliente, data_cadastro)
		VALUES ($1, $2, $3)
		RETURNING id, nome_cliente, cpf_cliente, data_cadastro, data_atualizacao
	`
	row := r.db.QueryRowContext(ctx, q, c.NomeCliente, c.CPFCliente, c.DataCadastro)
	return scanClient(row)
}

func (r *ClientPostgres) FindByID(ctx context.Context, id int64) (*model.Client, error) {
	const q = `
		SELECT id, nome_cliente, cpf_cliente, data_cadastro, data_atualizacao
		FROM cliente
		WHERE id = $1
	`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

func (r *ClientPostgres) FindByCPF(ctx context.Context, cpf string) (*model.Client, error) {
	const q = `
		SELECT id, nome_cliente, cpf_cliente, data_cadastro, data_atualizacao
		FROM cliente
		WHERE cpf_cliente = $1
	`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, cpf))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ClientPostgres) List(ctx context.Context, f repository.ClientFilter) ([]model.Client, error) {
	const q = `
		SELECT id, nome_cliente, cpf_cliente, data_cadastro, data_atualizacao
		FROM cliente
		WHERE ($1 = '' OR nome_cliente ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR cpf_cliente = $2)
		ORDER BY data_cadastro
	`
	rows, err := r.db.QueryContext(ctx, q, f.Nome, f.CPF)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		var (
			c   model.Client
			upd sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.NomeCliente, &c.CPFCliente, &c.DataCadastro, &upd); err != nil {
			return nil, err
		}
		if upd.Valid {
			c.DataAtualizacao = &model.Timestamp{Time: upd.Time}
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) error {
	const q = `
		UPDATE cliente
		SET nome_cliente = $1, cpf_cliente = $2, data_atualizacao = $3
		WHERE id = $4
	`
	var upd sql.NullTime
	if c.DataAtualizacao != nil {
		upd = sql.NullTime{Time: c.DataAtualizacao.Time, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q, c.NomeCliente, c.CPFCliente, upd, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ClientPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM cliente WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanClient(row *sql.Row) (*model.Client, error) {
	var (
		c   model.Client
		upd sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.NomeCliente, &c.CPFCliente, &c.DataCadastro, &upd); err != nil {
		return nil, err
	}
	if upd.Valid {
		c.DataAtualizacao = &model.Timestamp{Time: upd.Time}
	}
	return &c, nil
}

// requireRow maps a zero-row mutation to sql.ErrNoRows so callers can
// distinguish "not found" from success.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
