package postgres

import (
	"context"
	"database/sql"

	"lexapi/internal/model"
	"lexapi/internal/repository"
)

const consultationColumns = `id, nome_cliente, cpf_cliente, data_consulta, horario_consulta, COALESCE(detalhes_consulta, ''), cliente_id`

// ConsultationPostgres is a PostgreSQL implementation of
// repository.ConsultationRepository.
type ConsultationPostgres struct {
	db *sql.DB
}

// NewConsultationPostgres creates a new ConsultationPostgres repository.
func NewConsultationPostgres(db *sql.DB) *ConsultationPostgres {
	return &ConsultationPostgres{db: db}
}

var _ repository.ConsultationRepository = (*ConsultationPostgres)(nil)

func (r *ConsultationPostgres) Create(ctx context.Context, c *model.Consultation) (*model.Consultation, error) {
	const q = `
		INSERT INTO consulta_juridica (nome_cliente, cpf_cliente, data_consulta, horario_consulta, detalhes_consulta, cliente_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + consultationColumns
	row := r.db.QueryRowContext(ctx, q,
		c.NomeCliente,
		c.CPFCliente,
		c.DataConsulta,
		c.HorarioConsulta,
		c.DetalhesConsulta,
		c.ClienteID,
	)
	return scanConsultation(row)
}

func (r *ConsultationPostgres) FindByID(ctx context.Context, id int64) (*model.Consultation, error) {
	const q = `SELECT ` + consultationColumns + ` FROM consulta_juridica WHERE id = $1`
	return scanConsultation(r.db.QueryRowContext(ctx, q, id))
}

func (r *ConsultationPostgres) FindForDay(ctx context.Context, cpf string, data model.Date, excludeID int64) (*model.Consultation, error) {
	const q = `
		SELECT ` + consultationColumns + `
		FROM consulta_juridica
		WHERE cpf_cliente = $1 AND data_consulta = $2 AND ($3 = 0 OR id <> $3)
		LIMIT 1
	`
	c, err := scanConsultation(r.db.QueryRowContext(ctx, q, cpf, data, excludeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ConsultationPostgres) List(ctx context.Context, f repository.ConsultationFilter) ([]model.Consultation, error) {
	// Filter precedence: date, then client name, then CPF, then all.
	switch {
	case f.Data != nil:
		const q = `SELECT ` + consultationColumns + ` FROM consulta_juridica WHERE data_consulta = $1 ORDER BY horario_consulta`
		return r.queryAll(ctx, q, *f.Data)
	case f.NomeCliente != "":
		const q = `SELECT ` + consultationColumns + ` FROM consulta_juridica WHERE nome_cliente = $1 ORDER BY data_consulta, horario_consulta`
		return r.queryAll(ctx, q, f.NomeCliente)
	case f.CPFCliente != "":
		const q = `SELECT ` + consultationColumns + ` FROM consulta_juridica WHERE cpf_cliente = $1 ORDER BY data_consulta, horario_consulta`
		return r.queryAll(ctx, q, f.CPFCliente)
	default:
		const q = `SELECT ` + consultationColumns + ` FROM consulta_juridica ORDER BY data_consulta, horario_consulta`
		return r.queryAll(ctx, q)
	}
}

func (r *ConsultationPostgres) FindBySlot(ctx context.Context, data model.Date, horario model.TimeOfDay) ([]model.Consultation, error) {
	const q = `SELECT ` + consultationColumns + ` FROM consulta_juridica WHERE data_consulta = $1 AND horario_consulta = $2`
	return r.queryAll(ctx, q, data, horario)
}

func (r *ConsultationPostgres) Update(ctx context.Context, c *model.Consultation) error {
	const q = `
		UPDATE consulta_juridica
		SET nome_cliente = $1, cpf_cliente = $2, data_consulta = $3, horario_consulta = $4, detalhes_consulta = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, q,
		c.NomeCliente,
		c.CPFCliente,
		c.DataConsulta,
		c.HorarioConsulta,
		c.DetalhesConsulta,
		c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ConsultationPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM consulta_juridica WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ConsultationPostgres) SyncClientCopies(ctx context.Context, clientID int64, nome, cpf string) error {
	const q = `UPDATE consulta_juridica SET nome_cliente = $1, cpf_cliente = $2 WHERE cliente_id = $3`
	_, err := r.db.ExecContext(ctx, q, nome, cpf, clientID)
	return err
}

func (r *ConsultationPostgres) queryAll(ctx context.Context, q string, args ...any) ([]model.Consultation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Consultation, 0)
	for rows.Next() {
		var c model.Consultation
		if err := rows.Scan(&c.ID, &c.NomeCliente, &c.CPFCliente, &c.DataConsulta, &c.HorarioConsulta, &c.DetalhesConsulta, &c.ClienteID); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func scanConsultation(row *sql.Row) (*model.Consultation, error) {
	var c model.Consultation
	if err := row.Scan(&c.ID, &c.NomeCliente, &c.CPFCliente, &c.DataConsulta, &c.HorarioConsulta, &c.DetalhesConsulta, &c.ClienteID); err != nil {
		return nil, err
	}
	return &c, nil
}
