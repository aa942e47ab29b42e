package finiquito

import "context"

// StoreAPI is the persistence boundary for motivo configuration and settled
// cases. The calculator itself never touches it; handlers do.
type StoreAPI interface {
	GetMotivoConfig(ctx context.Context, code string) (MotivoConfig, error)
	ListMotivoConfigs(ctx context.Context) ([]MotivoConfig, error)
	UpsertMotivoConfig(ctx context.Context, cfg MotivoConfig) error

	CreateCase(ctx context.Context, result CalculationResult) (string, error)
	ListCases(ctx context.Context, limit, offset int) ([]CaseSummary, error)
	CountCases(ctx context.Context) (int, error)
	GetResult(ctx context.Context, caseID string) (CalculationResult, error)
	UpdateCaseStatus(ctx context.Context, caseID, status string) error
	SetDocumentPath(ctx context.Context, caseID, path string) error
	DocumentPath(ctx context.Context, caseID string) (string, error)
}
