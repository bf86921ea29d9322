package handler

import (
	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
)

// --- Request → Service input ---

func toTurnoInput(req turnoRequest) service.TurnoInput {
	return service.TurnoInput{
		Socio: req.Socio,
		Fecha: req.Fecha,
		Hora:  req.Hora,
	}
}

func toAccesorioChange(req accesorioUpdateRequest) service.AccesorioChange {
	return service.AccesorioChange{
		Estado:   req.Estado,
		Contados: req.Contados,
		Obs:      req.Obs,
	}
}

// --- Domain → Response ---

func toAccesorioView(a domain.Accesorio) accesorioView {
	return accesorioView{
		Accesorio:   a,
		EstadoLabel: domain.AccesorioLabels[a.Estado],
		Faltantes:   a.Faltantes(),
	}
}

func toAccesorioViews(items []domain.Accesorio) []accesorioView {
	out := make([]accesorioView, 0, len(items))
	for _, it := range items {
		out = append(out, toAccesorioView(it))
	}
	return out
}
