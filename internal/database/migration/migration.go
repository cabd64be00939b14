package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_cliente",
		SQL: `CREATE TABLE IF NOT EXISTS cliente (
  id               BIGSERIAL   PRIMARY KEY,
  nome_cliente     VARCHAR(80) NOT NULL,
  cpf_cliente      VARCHAR(11) NOT NULL UNIQUE,
  data_cadastro    TIMESTAMPTZ NOT NULL,
  data_atualizacao TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_consulta_juridica",
		SQL: `CREATE TABLE IF NOT EXISTS consulta_juridica (
  id                BIGSERIAL    PRIMARY KEY,
  nome_cliente      VARCHAR(80)  NOT NULL,
  cpf_cliente       VARCHAR(11)  NOT NULL,
  data_consulta     DATE         NOT NULL,
  horario_consulta  TIME         NOT NULL,
  detalhes_consulta VARCHAR(200),
  cliente_id        BIGINT       NOT NULL REFERENCES cliente (id) ON DELETE CASCADE,
  CONSTRAINT consulta_unico UNIQUE (cpf_cliente, data_consulta)
);`,
	},
	{
		Name: "create_index_consulta_data",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_consulta_data ON consulta_juridica (data_consulta);`,
	},
	{
		Name: "create_table_documento",
		SQL: `CREATE TABLE IF NOT EXISTS documento (
  id                    BIGSERIAL    PRIMARY KEY,
  documento_nome        VARCHAR(200) NOT NULL,
  documento_localizacao VARCHAR(200),
  documento_url         VARCHAR(200),
  cliente_id            BIGINT       NOT NULL REFERENCES cliente (id) ON DELETE CASCADE,
  consulta_id           BIGINT       REFERENCES consulta_juridica (id) ON DELETE SET NULL
);`,
	},
	{
		Name: "create_table_peca_processual",
		SQL: `CREATE TABLE IF NOT EXISTS peca_processual (
  id                    BIGSERIAL    PRIMARY KEY,
  nome_peca             VARCHAR(200) NOT NULL,
  categoria             VARCHAR(80)  NOT NULL,
  documento_localizacao VARCHAR(200),
  documento_url         VARCHAR(200)
);`,
	},
	{
		Name: "create_table_usuario",
		SQL: `CREATE TABLE IF NOT EXISTS usuario (
  id            BIGSERIAL   PRIMARY KEY,
  username      VARCHAR(64) NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  name          VARCHAR(64) NOT NULL,
  image         TEXT
);`,
	},
}

// EnsureMigrated checks if the 'cliente' table exists and runs the schema
// steps if it doesn't. The UNIQUE constraint on (cpf_cliente, data_consulta)
// is the backstop for the scheduler's advisory conflict checks.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.cliente') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logJSON(loc, map[string]any{
				"component":     "database",
				"event":         "db_migration_step_failed",
				"status":        "error",
				"step":          step.Name,
				"error_message": err.Error(),
				"db_host":       dbHost,
				"duration_ms":   time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s: %w", step.Name, err)
		}
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_step",
			"status":      "success",
			"step":        step.Name,
			"db_host":     dbHost,
			"duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_done",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func logJSON(loc *time.Location, fields map[string]any) {
	fields["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if b, err := json.Marshal(fields); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
