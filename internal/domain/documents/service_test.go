package documents

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finiquitos/internal/domain/finiquito"
	cryptoutil "finiquitos/internal/platform/crypto"
)

func sampleResult(t *testing.T) finiquito.CalculationResult {
	t.Helper()
	hired, err := time.Parse("2006-01-02", "2020-03-01")
	if err != nil {
		t.Fatalf("bad date: %v", err)
	}
	payUntil, err := time.Parse("2006-01-02", "2023-09-15")
	if err != nil {
		t.Fatalf("bad date: %v", err)
	}

	return finiquito.CalculationResult{
		CalculationID: "calc-1",
		Employee: finiquito.Employee{
			CI:           "1234567",
			Name:         "María Quispe",
			Empresa:      "Empresa Demo S.A.",
			Unidad:       "Finanzas",
			Ocupacion:    "Analista",
			FechaIngreso: hired,
		},
		CaseParams: finiquito.CaseParameters{
			PayUntilDate: payUntil,
			MotivoRetiro: "RENUNCIA",
		},
		AntiguedadReal: finiquito.Tenure{Years: 3, Months: 6, Days: 14, TotalDays: 1274},
		TiempoPago:     finiquito.Tenure{Years: 3, Months: 6, Days: 14, TotalDays: 1274},
		SalaryAverage:  decimal.RequireFromString("4200.00"),
		Benefits: []finiquito.BenefitLine{
			{Concept: "INDEMNIZACION_ANOS", Description: "Indemnización por 3 años", Amount: decimal.RequireFromString("12600.00")},
		},
		Deductions: []finiquito.BenefitLine{
			{Concept: "ANTICIPO", Description: "Anticipo agosto", Amount: decimal.RequireFromString("300.00")},
		},
		TotalBenefits:   decimal.RequireFromString("12600.00"),
		TotalDeductions: decimal.RequireFromString("300.00"),
		NetPayment:      decimal.RequireFromString("12300.00"),
	}
}

func TestGenerateFiniquitoPDF(t *testing.T) {
	dir := t.TempDir()
	plainCrypto, err := cryptoutil.New("")
	if err != nil {
		t.Fatalf("crypto: %v", err)
	}
	svc := NewService(dir, plainCrypto)

	path, err := svc.GenerateFiniquitoPDF("case-1", sampleResult(t))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if filepath.Ext(path) != ".pdf" {
		t.Fatalf("expected plaintext pdf path, got %s", path)
	}

	data, err := svc.ReadDocument(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected a PDF header")
	}
}

func TestGenerateEncryptedDocument(t *testing.T) {
	dir := t.TempDir()
	crypto, err := cryptoutil.New(strings.Repeat("a", 64))
	if err != nil {
		t.Fatalf("crypto: %v", err)
	}
	svc := NewService(dir, crypto)

	path, err := svc.GenerateFiniquitoPDF("case-2", sampleResult(t))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if filepath.Ext(path) != ".enc" {
		t.Fatalf("expected encrypted path, got %s", path)
	}

	// The plaintext intermediate must be gone.
	if _, err := os.Stat(strings.TrimSuffix(path, ".enc")); !os.IsNotExist(err) {
		t.Fatalf("plaintext pdf left behind: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("stored file must not be a plaintext PDF")
	}

	data, err := svc.ReadDocument(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("decrypted document must be a PDF")
	}
}
