package entity

import "time"

// DateOnlyLayout formato de fecha de documento (sin hora).
const DateOnlyLayout = "2006-01-02"

// IsDateOnly reporta si value es una fecha real en formato YYYY-MM-DD.
// Rechaza fechas imposibles como 2024-02-31 aunque tengan el formato correcto.
func IsDateOnly(value string) bool {
	if len(value) != len(DateOnlyLayout) {
		return false
	}
	parsed, err := time.Parse(DateOnlyLayout, value)
	if err != nil {
		return false
	}
	return parsed.Format(DateOnlyLayout) == value
}

// YearOfDate devuelve el año de una fecha YYYY-MM-DD ya validada.
func YearOfDate(value string) int {
	parsed, err := time.Parse(DateOnlyLayout, value)
	if err != nil {
		return 0
	}
	return parsed.Year()
}
