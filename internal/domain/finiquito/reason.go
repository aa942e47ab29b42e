package finiquito

import "strings"

// Reason matching is deliberately substring-based on the raw configured code,
// because operators enter and rename reason codes freely. The three predicates
// below are the only place that fragility lives.

// IsJustifiedDismissal reports whether the reason text marks a dismissal with
// cause. Note that DESPIDO_INJUSTIFICADO also contains "JUSTIFICADO" and so
// matches here; its benefits come from its stored flag configuration, not from
// the statutory overrides this predicate guards.
func IsJustifiedDismissal(motivoRetiro string) bool {
	return strings.Contains(strings.ToUpper(motivoRetiro), "JUSTIFICADO")
}

// IsDismissal reports whether the reason text is any kind of dismissal.
func IsDismissal(motivoRetiro string) bool {
	return strings.Contains(strings.ToUpper(motivoRetiro), "DESPIDO")
}

// IsQuinquenio reports whether the case is a five-year seniority settlement.
// Unlike the dismissal predicates this is an exact match.
func IsQuinquenio(motivoRetiro string) bool {
	return motivoRetiro == MotivoQuinquenio
}
