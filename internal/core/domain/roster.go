package domain

import (
	"math"
	"strings"
)

// Stats aggregates a roster by status.
type Stats struct {
	Total             int `json:"total"`
	Activos           int `json:"activos"`
	Inactivos         int `json:"inactivos"`
	PorcentajeActivos int `json:"porcentajeActivos"`
}

// Search returns the members matching text and status, preserving roster order.
//
// Text that is blank after trimming disables text filtering. Otherwise text,
// as given, must appear case-insensitively in the display name, email or phone. StatusTodos (or an empty status) disables status filtering;
// any other value must equal Estado exactly. The input is never modified.
func Search(socios []Socio, text string, status SocioStatus) []Socio {
	filterText := strings.TrimSpace(text) != ""
	needle := strings.ToLower(text)
	filterStatus := status != "" && status != StatusTodos

	out := make([]Socio, 0, len(socios))
	for _, s := range socios {
		if filterText && !matchesText(s, needle) {
			continue
		}
		if filterStatus && s.Estado != status {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesText(s Socio, needle string) bool {
	for _, field := range []string{s.DisplayName(), s.Email, s.Telefono} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ComputeStats counts members by status. PorcentajeActivos is 0 for an empty roster.
func ComputeStats(socios []Socio) Stats {
	st := Stats{Total: len(socios)}
	for _, s := range socios {
		switch s.Estado {
		case StatusActivo:
			st.Activos++
		case StatusInactivo:
			st.Inactivos++
		}
	}
	if st.Total > 0 {
		st.PorcentajeActivos = int(math.Round(float64(st.Activos) / float64(st.Total) * 100))
	}
	return st
}

// CountByTier counts members per membership tier. Known tiers are always present.
func CountByTier(socios []Socio) map[MembershipTier]int {
	counts := make(map[MembershipTier]int, len(Tiers))
	for _, t := range Tiers {
		counts[t] = 0
	}
	for _, s := range socios {
		if s.TipoMembresia != "" {
			counts[s.TipoMembresia]++
		}
	}
	return counts
}
