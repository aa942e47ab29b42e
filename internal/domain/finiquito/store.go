package finiquito

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

var _ StoreAPI = (*Store)(nil)

func (s *Store) GetMotivoConfig(ctx context.Context, code string) (MotivoConfig, error) {
	var cfg MotivoConfig
	err := s.DB.QueryRow(ctx, `
    SELECT code, description, dia_menos_flag, indemnizacion_flag, aguinaldo_flag, desahucio_flag, vacaciones_flag, is_active
    FROM motivo_configs
    WHERE code = $1 AND is_active
  `, code).Scan(&cfg.Code, &cfg.Description, &cfg.DiaMenos, &cfg.Indemnizacion, &cfg.Aguinaldo, &cfg.Desahucio, &cfg.Vacaciones, &cfg.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return MotivoConfig{}, ErrMotivoNotFound
	}
	if err != nil {
		return MotivoConfig{}, err
	}
	return cfg, nil
}

func (s *Store) ListMotivoConfigs(ctx context.Context) ([]MotivoConfig, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT code, description, dia_menos_flag, indemnizacion_flag, aguinaldo_flag, desahucio_flag, vacaciones_flag, is_active
    FROM motivo_configs
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []MotivoConfig
	for rows.Next() {
		var cfg MotivoConfig
		if err := rows.Scan(&cfg.Code, &cfg.Description, &cfg.DiaMenos, &cfg.Indemnizacion, &cfg.Aguinaldo, &cfg.Desahucio, &cfg.Vacaciones, &cfg.IsActive); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

func (s *Store) UpsertMotivoConfig(ctx context.Context, cfg MotivoConfig) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO motivo_configs (code, description, dia_menos_flag, indemnizacion_flag, aguinaldo_flag, desahucio_flag, vacaciones_flag, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (code) DO UPDATE SET
      description = EXCLUDED.description,
      dia_menos_flag = EXCLUDED.dia_menos_flag,
      indemnizacion_flag = EXCLUDED.indemnizacion_flag,
      aguinaldo_flag = EXCLUDED.aguinaldo_flag,
      desahucio_flag = EXCLUDED.desahucio_flag,
      vacaciones_flag = EXCLUDED.vacaciones_flag,
      is_active = EXCLUDED.is_active,
      updated_at = now()
  `, cfg.Code, cfg.Description, cfg.DiaMenos, cfg.Indemnizacion, cfg.Aguinaldo, cfg.Desahucio, cfg.Vacaciones, cfg.IsActive)
	return err
}

// CreateCase persists a settled case together with its full result echo. The
// result JSON is the audit record; the case row carries the list-view columns.
// Monetary columns travel as decimal strings, never float64.
func (s *Store) CreateCase(ctx context.Context, result CalculationResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal calculation result: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var caseID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO finiquito_cases (calculation_id, employee_ci, employee_name, empresa, motivo_retiro, status, net_payment)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, result.CalculationID, result.Employee.CI, result.Employee.Name, result.Employee.Empresa,
		result.CaseParams.MotivoRetiro, CaseStatusCalculated, result.NetPayment.String()).Scan(&caseID); err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO finiquito_results (case_id, result, total_benefits, total_deductions, net_payment)
    VALUES ($1,$2,$3,$4,$5)
  `, caseID, payload, result.TotalBenefits.String(), result.TotalDeductions.String(), result.NetPayment.String()); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return caseID, nil
}

func (s *Store) ListCases(ctx context.Context, limit, offset int) ([]CaseSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_ci, employee_name, empresa, motivo_retiro, status, net_payment::text, created_at
    FROM finiquito_cases
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []CaseSummary
	for rows.Next() {
		var c CaseSummary
		var net string
		if err := rows.Scan(&c.ID, &c.EmployeeCI, &c.EmployeeName, &c.Empresa, &c.MotivoRetiro, &c.Status, &net, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.NetPayment, err = decimal.NewFromString(net)
		if err != nil {
			return nil, fmt.Errorf("case %s: bad net_payment %q: %w", c.ID, net, err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (s *Store) CountCases(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM finiquito_cases`).Scan(&count)
	return count, err
}

func (s *Store) GetResult(ctx context.Context, caseID string) (CalculationResult, error) {
	var payload []byte
	err := s.DB.QueryRow(ctx, `
    SELECT result FROM finiquito_results WHERE case_id = $1
  `, caseID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return CalculationResult{}, ErrResultNotFound
	}
	if err != nil {
		return CalculationResult{}, err
	}

	var result CalculationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return CalculationResult{}, fmt.Errorf("unmarshal calculation result: %w", err)
	}
	return result, nil
}

func (s *Store) UpdateCaseStatus(ctx context.Context, caseID, status string) error {
	tag, err := s.DB.Exec(ctx, `UPDATE finiquito_cases SET status = $2 WHERE id = $1`, caseID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (s *Store) SetDocumentPath(ctx context.Context, caseID, path string) error {
	tag, err := s.DB.Exec(ctx, `UPDATE finiquito_cases SET document_path = $2 WHERE id = $1`, caseID, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (s *Store) DocumentPath(ctx context.Context, caseID string) (string, error) {
	var path *string
	err := s.DB.QueryRow(ctx, `SELECT document_path FROM finiquito_cases WHERE id = $1`, caseID).Scan(&path)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrCaseNotFound
	}
	if err != nil {
		return "", err
	}
	if path == nil {
		return "", nil
	}
	return *path, nil
}
