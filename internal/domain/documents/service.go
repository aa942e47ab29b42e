// Package documents renders finiquito settlement documents from calculation
// results. It only reads the structured result; no amounts are recomputed here.
package documents

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"finiquitos/internal/domain/finiquito"
	cryptoutil "finiquitos/internal/platform/crypto"
)

type Service struct {
	dir    string
	crypto *cryptoutil.Service
}

func NewService(dir string, crypto *cryptoutil.Service) *Service {
	return &Service{dir: dir, crypto: crypto}
}

// GenerateFiniquitoPDF writes the settlement document for one case and returns
// the stored path. With an encryption key configured the plaintext PDF is
// replaced by an .enc file.
func (s *Service) GenerateFiniquitoPDF(caseID string, result finiquito.CalculationResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.dir, caseID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Finiquito - Liquidación de Beneficios Sociales")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Empleado:", fmt.Sprintf("%s (CI %s)", result.Employee.Name, result.Employee.CI))
	writeRow(pdf, "Empresa:", result.Employee.Empresa)
	writeRow(pdf, "Cargo:", fmt.Sprintf("%s / %s", result.Employee.Ocupacion, result.Employee.Unidad))
	writeRow(pdf, "Fecha de ingreso:", result.Employee.FechaIngreso.Format("2006-01-02"))
	writeRow(pdf, "Pagado hasta:", result.CaseParams.PayUntilDate.Format("2006-01-02"))
	writeRow(pdf, "Motivo de retiro:", result.CaseParams.MotivoRetiro)
	writeRow(pdf, "Antigüedad real:", result.AntiguedadReal.String())
	writeRow(pdf, "Tiempo de pago:", result.TiempoPago.String())
	writeRow(pdf, "Sueldo promedio:", result.SalaryAverage.StringFixed(2))
	pdf.Ln(6)

	writeLines(pdf, "BENEFICIOS", result.Benefits)
	pdf.Ln(4)
	writeLines(pdf, "DEDUCCIONES", result.Deductions)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	writeTotal(pdf, "Total Beneficios:", result.TotalBenefits)
	writeTotal(pdf, "Total Deducciones:", result.TotalDeductions)
	writeTotal(pdf, "Líquido Pagable:", result.NetPayment)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.crypto != nil && s.crypto.Configured() {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.crypto.Encrypt(data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}

// ReadDocument loads a stored document, decrypting when needed.
func (s *Service) ReadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".enc" && s.crypto != nil {
		return s.crypto.Decrypt(data)
	}
	return data, nil
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func writeLines(pdf *gofpdf.Fpdf, title string, lines []finiquito.BenefitLine) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(lines) == 0 {
		pdf.CellFormat(0, 7, "Ninguna", "", 1, "L", false, 0, "")
		return
	}
	for _, line := range lines {
		pdf.CellFormat(140, 7, line.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
}

func writeTotal(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(140, 8, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, amount.StringFixed(2), "", 1, "R", false, 0, "")
}
