package finiquito

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	CI              string    `json:"ci"`
	Extension       string    `json:"extension,omitempty"`
	Name            string    `json:"name"`
	Empresa         string    `json:"empresa"`
	Unidad          string    `json:"unidad"`
	Ocupacion       string    `json:"ocupacion"`
	FechaIngreso    time.Time `json:"fechaIngreso"`
	FechaNacimiento time.Time `json:"fechaNacimiento"`
	EstadoCivil     string    `json:"estadoCivil,omitempty"`
	Domicilio       string    `json:"domicilio,omitempty"`
}

// FullIdentifier keys an employee across payroll files, where CI alone is not
// unique between sister companies.
func (e Employee) FullIdentifier() string {
	return fmt.Sprintf("%s_%s", e.CI, e.Empresa)
}

// PayrollMonth is one closed payroll snapshot. Three of them, ordered
// oldest to newest, feed every calculation.
type PayrollMonth struct {
	MonthName      string          `json:"monthName"`
	YearMonth      string          `json:"yearMonth"`
	HaberBasico    decimal.Decimal `json:"haberBasico"`
	BonoAntiguedad decimal.Decimal `json:"bonoAntiguedad"`
	OtrosBonos     decimal.Decimal `json:"otrosBonos"`
	TotalGanado    decimal.Decimal `json:"totalGanado"`
}

// ComponentTotal is the sum the declared TotalGanado is reconciled against.
func (m PayrollMonth) ComponentTotal() decimal.Decimal {
	return m.HaberBasico.Add(m.BonoAntiguedad).Add(m.OtrosBonos)
}

// Tenure is elapsed service time decomposed into calendar units. TotalDays is
// recomputed from the units under the 360-day commercial-year convention, so it
// generally differs from the true calendar day count. Both representations are
// kept on purpose.
type Tenure struct {
	Years     int `json:"years"`
	Months    int `json:"months"`
	Days      int `json:"days"`
	TotalDays int `json:"totalDays"`
}

func (t Tenure) String() string {
	return fmt.Sprintf("%d años, %d meses, %d días", t.Years, t.Months, t.Days)
}

// CaseParameters describes the termination event being settled.
type CaseParameters struct {
	PayUntilDate         time.Time `json:"payUntilDate"`
	RequestDate          time.Time `json:"requestDate"`
	MotivoRetiro         string    `json:"motivoRetiro"`
	CalculationStartDate time.Time `json:"calculationStartDate"`
	QuinquenioStartDate  time.Time `json:"quinquenioStartDate,omitempty"`
	AguinaldoAlreadyPaid bool      `json:"aguinaldoAlreadyPaid"`
}

// AdjustmentLine is an operator-entered advance or deduction.
type AdjustmentLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ManualInputs carries operator-supplied values that never appear in payroll
// data. All amounts are exact decimals; these figures end up on a legally
// binding document.
type ManualInputs struct {
	VacationDaysBalance     decimal.Decimal  `json:"vacationDaysBalance"`
	RCIVAFlag               bool             `json:"rcIvaFlag"`
	BonoExtraordinarioMonto decimal.Decimal  `json:"bonoExtraordinarioMonto"`
	BonoExtraordinarioLabel string           `json:"bonoExtraordinarioLabel,omitempty"`
	Anticipos               []AdjustmentLine `json:"anticipos,omitempty"`
	Deducciones             []AdjustmentLine `json:"deducciones,omitempty"`
}

// MotivoConfig holds the five benefit gates for one termination-reason code.
type MotivoConfig struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiaMenos      bool   `json:"diaMenosFlag"`
	Indemnizacion bool   `json:"indemnizacionFlag"`
	Aguinaldo     bool   `json:"aguinaldoFlag"`
	Desahucio     bool   `json:"desahucioFlag"`
	Vacaciones    bool   `json:"vacacionesFlag"`
	IsActive      bool   `json:"isActive"`
}

// BenefitLine is one settlement line item. Deductions reuse the same shape;
// amounts are always non-negative, sign is implied by the list a line sits in.
// Factor/Days/Months/Years annotate how Amount was derived, for audit.
type BenefitLine struct {
	Concept     string          `json:"concept"`
	Description string          `json:"description"`
	BaseAmount  decimal.Decimal `json:"baseAmount"`
	Factor      decimal.Decimal `json:"factor"`
	Days        int             `json:"days,omitempty"`
	Months      int             `json:"months,omitempty"`
	Years       int             `json:"years,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// CalculationResult is the engine's sole output. Inputs are echoed back so the
// stored record is self-contained for audit. Never mutated after creation.
type CalculationResult struct {
	CalculationID   string          `json:"calculationId"`
	Employee        Employee        `json:"employee"`
	CaseParams      CaseParameters  `json:"caseParams"`
	AntiguedadReal  Tenure          `json:"antiguedadReal"`
	TiempoPago      Tenure          `json:"tiempoPago"`
	PayrollMonths   []PayrollMonth  `json:"payrollMonths"`
	SalaryAverage   decimal.Decimal `json:"salaryAverage"`
	ManualInputs    ManualInputs    `json:"manualInputs"`
	MotivoConfig    MotivoConfig    `json:"motivoConfig"`
	Benefits        []BenefitLine   `json:"benefits"`
	Deductions      []BenefitLine   `json:"deductions"`
	TotalBenefits   decimal.Decimal `json:"totalBenefits"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPayment      decimal.Decimal `json:"netPayment"`
	Warnings        []string        `json:"warnings,omitempty"`
	CalculatedAt    time.Time       `json:"calculatedAt"`
}

// CaseSummary is the list-view projection of a persisted case.
type CaseSummary struct {
	ID           string          `json:"id"`
	EmployeeCI   string          `json:"employeeCi"`
	EmployeeName string          `json:"employeeName"`
	Empresa      string          `json:"empresa"`
	MotivoRetiro string          `json:"motivoRetiro"`
	Status       string          `json:"status"`
	NetPayment   decimal.Decimal `json:"netPayment"`
	CreatedAt    time.Time       `json:"createdAt"`
}
