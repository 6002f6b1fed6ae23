// Package utils holds the small display helpers shared by the views.
package utils

import (
	"fmt"
	"math"
)

// FormatPace renders a fractional minutes-per-kilometer pace as m:ss.
func FormatPace(paceMinKM float64) string {
	if paceMinKM <= 0 || math.IsNaN(paceMinKM) || math.IsInf(paceMinKM, 0) {
		return "-"
	}
	minutes := int(paceMinKM)
	seconds := int((paceMinKM - float64(minutes)) * 60)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// RPELabel mirrors the effort scale shown next to the RPE selects.
func RPELabel(rpe int) string {
	switch {
	case rpe <= 3:
		return "Muito Fácil"
	case rpe <= 5:
		return "Fácil"
	case rpe <= 7:
		return "Moderado"
	case rpe <= 9:
		return "Difícil"
	default:
		return "Máximo"
	}
}

// PerformanceStatus maps the server-computed factor to the badge shown on
// the progress view. The factor itself is display only here; its formula
// lives server side.
func PerformanceStatus(factor float64) string {
	switch {
	case factor > 1.1:
		return "Excelente"
	case factor > 1.0:
		return "Bom"
	case factor > 0.9:
		return "Normal"
	default:
		return "Precisa Ajustar"
	}
}

// FormatGoal renders the target the runner registered, e.g. "10km em 1h15min".
func FormatGoal(distanceKM float64, totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return fmt.Sprintf("%gkm em %dh%dmin", distanceKM, hours, minutes)
}
