// Package validation runs the input consistency checks that must pass before
// a settlement is calculated. The calculator trusts its inputs; everything
// here is the caller's gate.
package validation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finiquitos/internal/domain/finiquito"
)

const (
	SeverityBlocking = "blocking"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

type Result struct {
	ValidationID string         `json:"validationId"`
	Valid        bool           `json:"valid"`
	Severity     string         `json:"severity"`
	Message      string         `json:"message"`
	Details      map[string]any `json:"details,omitempty"`
}

// IsBlocking reports whether this result must stop the calculation.
func (r Result) IsBlocking() bool {
	return r.Severity == SeverityBlocking && !r.Valid
}

// centTolerance is the reconciliation slack for declared totals. Differences
// above one boliviano block; anything above a centavo is at least a warning.
var (
	centTolerance = decimal.RequireFromString("0.01")
	hardTolerance = decimal.RequireFromString("1.00")
)

// PayDateAfterIngreso checks the termination date does not precede hire.
func PayDateAfterIngreso(fechaIngreso, payUntilDate time.Time) Result {
	if payUntilDate.Before(fechaIngreso) {
		return Result{
			ValidationID: "pay_date_after_ingreso",
			Valid:        false,
			Severity:     SeverityBlocking,
			Message:      "La fecha de retiro es anterior a la fecha de ingreso",
			Details: map[string]any{
				"fechaIngreso": fechaIngreso.Format("2006-01-02"),
				"payUntilDate": payUntilDate.Format("2006-01-02"),
			},
		}
	}
	return Result{
		ValidationID: "pay_date_after_ingreso",
		Valid:        true,
		Severity:     SeverityInfo,
		Message:      "Fechas consistentes",
	}
}

// QuinquenioStartBeforePayDate checks a prior five-year settlement date does
// not postdate the termination being settled.
func QuinquenioStartBeforePayDate(quinquenioStart, payUntilDate time.Time) Result {
	if quinquenioStart.After(payUntilDate) {
		return Result{
			ValidationID: "quinquenio_start_before_pay_date",
			Valid:        false,
			Severity:     SeverityBlocking,
			Message:      "La fecha de inicio del quinquenio es posterior a la fecha de retiro",
			Details: map[string]any{
				"quinquenioStartDate": quinquenioStart.Format("2006-01-02"),
				"payUntilDate":        payUntilDate.Format("2006-01-02"),
			},
		}
	}
	return Result{
		ValidationID: "quinquenio_start_before_pay_date",
		Valid:        true,
		Severity:     SeverityInfo,
		Message:      "Fecha de quinquenio consistente",
	}
}

// MonthCount checks that exactly three payroll months were assembled.
func MonthCount(months []finiquito.PayrollMonth) Result {
	if len(months) != 3 {
		return Result{
			ValidationID: "payroll_month_count",
			Valid:        false,
			Severity:     SeverityBlocking,
			Message:      fmt.Sprintf("Se requieren 3 meses de planilla, se recibieron %d", len(months)),
		}
	}
	return Result{
		ValidationID: "payroll_month_count",
		Valid:        true,
		Severity:     SeverityInfo,
		Message:      "3 meses de planilla presentes",
	}
}

// MonthOrder checks the months arrive oldest to newest by their year-month key.
func MonthOrder(months []finiquito.PayrollMonth) Result {
	for i := 1; i < len(months); i++ {
		if months[i].YearMonth < months[i-1].YearMonth {
			return Result{
				ValidationID: "payroll_month_order",
				Valid:        false,
				Severity:     SeverityBlocking,
				Message:      fmt.Sprintf("Meses fuera de orden: %s antes de %s", months[i-1].YearMonth, months[i].YearMonth),
			}
		}
	}
	return Result{
		ValidationID: "payroll_month_order",
		Valid:        true,
		Severity:     SeverityInfo,
		Message:      "Meses en orden cronológico",
	}
}

// TotalGanado reconciles each month's declared total against its components.
// A difference within a centavo passes; up to one boliviano warns; beyond
// that it blocks.
func TotalGanado(months []finiquito.PayrollMonth) []Result {
	results := make([]Result, 0, len(months))
	for _, month := range months {
		difference := month.TotalGanado.Sub(month.ComponentTotal())
		valid := difference.Abs().LessThan(centTolerance)

		severity := SeverityWarning
		if difference.Abs().GreaterThan(hardTolerance) {
			severity = SeverityBlocking
		}
		if valid {
			severity = SeverityInfo
		}

		message := fmt.Sprintf("%s: Total correcto", month.MonthName)
		if !valid {
			message = fmt.Sprintf("%s: diferencia de %s", month.MonthName, difference.StringFixed(2))
		}

		results = append(results, Result{
			ValidationID: fmt.Sprintf("total_ganado_%s", month.YearMonth),
			Valid:        valid,
			Severity:     severity,
			Message:      message,
			Details: map[string]any{
				"declaredTotal":   month.TotalGanado.String(),
				"calculatedTotal": month.ComponentTotal().String(),
				"difference":      difference.String(),
			},
		})
	}
	return results
}

// RunAll executes every pre-calculation check for a case.
func RunAll(employee finiquito.Employee, months []finiquito.PayrollMonth, caseParams finiquito.CaseParameters) []Result {
	results := []Result{
		PayDateAfterIngreso(employee.FechaIngreso, caseParams.PayUntilDate),
		MonthCount(months),
		MonthOrder(months),
	}
	if !caseParams.QuinquenioStartDate.IsZero() {
		results = append(results, QuinquenioStartBeforePayDate(caseParams.QuinquenioStartDate, caseParams.PayUntilDate))
	}
	results = append(results, TotalGanado(months)...)
	return results
}

// HasBlocking reports whether any result forbids running the calculation.
func HasBlocking(results []Result) bool {
	for _, r := range results {
		if r.IsBlocking() {
			return true
		}
	}
	return false
}
