package finiquito

import "github.com/shopspring/decimal"

const (
	CaseStatusCalculated = "calculated"
	CaseStatusGenerated  = "generated"
	CaseStatusApproved   = "approved"
	CaseStatusPaid       = "paid"
	CaseStatusCancelled  = "cancelled"

	WarningDefaultMotivoConfig = "default_motivo_config"
	WarningNegativeNet         = "negative_net"
)

// Benefit and deduction concept codes, as they appear on the settlement document.
const (
	ConceptIndemnizacionAnos  = "INDEMNIZACION_ANOS"
	ConceptIndemnizacionMeses = "INDEMNIZACION_MESES"
	ConceptIndemnizacionDias  = "INDEMNIZACION_DIAS"
	ConceptDesahucio          = "DESAHUCIO"
	ConceptAguinaldo          = "AGUINALDO"
	ConceptVacaciones         = "VACACIONES"
	ConceptPrimaLegal         = "PRIMA_LEGAL"
	ConceptBonoExtraordinario = "BONO_EXTRAORDINARIO"
	ConceptAnticipo           = "ANTICIPO"
	ConceptDeduccion          = "DEDUCCION"
	ConceptRCIVAVacaciones    = "RC_IVA_VACACIONES"
)

// Termination-reason codes with built-in flag configuration.
const (
	MotivoRenuncia             = "RENUNCIA"
	MotivoDespido              = "DESPIDO"
	MotivoDespidoInjustificado = "DESPIDO_INJUSTIFICADO"
	MotivoRetiroIndirecto      = "RETIRO_INDIRECTO"
	MotivoQuinquenio           = "QUINQUENIO"
	MotivoConclusionContrato   = "CONCLUSION_CONTRATO"
)

// LaborConstants carries the legal parameters every calculation depends on.
// They are injected into the Calculator at construction instead of living as
// package globals, so future legal updates (UFV, minimum wage) stay testable.
type LaborConstants struct {
	DaysInYear       int
	DaysInMonth      int
	MonthsForAverage int
	MinTenureDays    int
	DesahucioFactor  decimal.Decimal
	PrimaRate        decimal.Decimal
	RCIVARate        decimal.Decimal
	MinimumWage      decimal.Decimal
	UFVValue         decimal.Decimal
}

// DefaultLaborConstants returns the Bolivian labor-law parameters in force.
func DefaultLaborConstants() LaborConstants {
	return LaborConstants{
		DaysInYear:       360,
		DaysInMonth:      30,
		MonthsForAverage: 3,
		MinTenureDays:    90,
		DesahucioFactor:  decimal.NewFromInt(3),
		PrimaRate:        decimal.RequireFromString("0.25"),
		RCIVARate:        decimal.RequireFromString("0.13"),
		MinimumWage:      decimal.RequireFromString("2362.00"),
		UFVValue:         decimal.RequireFromString("2.43"),
	}
}

// FallbackMotivoConfig is the documented policy applied when no configuration
// record exists for a reason code: indemnity, aguinaldo and vacation on,
// desahucio and día-menos off.
func FallbackMotivoConfig(code string) MotivoConfig {
	return MotivoConfig{
		Code:          code,
		Description:   "Configuración por defecto",
		DiaMenos:      false,
		Indemnizacion: true,
		Aguinaldo:     true,
		Desahucio:     false,
		Vacaciones:    true,
		IsActive:      true,
	}
}

// DefaultMotivoConfigs lists the built-in termination reasons. They double as
// database seed data.
func DefaultMotivoConfigs() []MotivoConfig {
	return []MotivoConfig{
		{
			Code:          MotivoRenuncia,
			Description:   "Renuncia voluntaria",
			Indemnizacion: true,
			Aguinaldo:     true,
			Vacaciones:    true,
			IsActive:      true,
		},
		{
			Code:        MotivoDespido,
			Description: "Despido con causa justificada",
			DiaMenos:    true,
			Aguinaldo:   true,
			Vacaciones:  true,
			IsActive:    true,
		},
		{
			Code:          MotivoDespidoInjustificado,
			Description:   "Despido sin causa justificada",
			Indemnizacion: true,
			Aguinaldo:     true,
			Desahucio:     true,
			Vacaciones:    true,
			IsActive:      true,
		},
		{
			Code:          MotivoRetiroIndirecto,
			Description:   "Retiro indirecto",
			Indemnizacion: true,
			Aguinaldo:     true,
			Desahucio:     true,
			Vacaciones:    true,
			IsActive:      true,
		},
		{
			Code:          MotivoQuinquenio,
			Description:   "Retiro por quinquenio",
			Indemnizacion: true,
			IsActive:      true,
		},
		{
			Code:          MotivoConclusionContrato,
			Description:   "Conclusión de contrato",
			Indemnizacion: true,
			Aguinaldo:     true,
			Vacaciones:    true,
			IsActive:      true,
		},
	}
}
