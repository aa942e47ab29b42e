package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"finiquitos/internal/domain/finiquito"
)

// Seed installs the built-in termination-reason configurations. Existing rows
// are left alone so operator edits survive restarts.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, cfg := range finiquito.DefaultMotivoConfigs() {
		if _, err := pool.Exec(ctx, `
      INSERT INTO motivo_configs (code, description, dia_menos_flag, indemnizacion_flag, aguinaldo_flag, desahucio_flag, vacaciones_flag, is_active)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      ON CONFLICT (code) DO NOTHING
    `, cfg.Code, cfg.Description, cfg.DiaMenos, cfg.Indemnizacion, cfg.Aguinaldo, cfg.Desahucio, cfg.Vacaciones, cfg.IsActive); err != nil {
			return err
		}
	}
	return nil
}
