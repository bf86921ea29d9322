package domain

// AccesorioEstado is the checklist condition of an equipment item.
type AccesorioEstado string

const (
	AccesorioOK      AccesorioEstado = "OK"
	AccesorioPerdido AccesorioEstado = "PERDIDO"
	AccesorioFuera   AccesorioEstado = "FUERA"
)

// AccesorioLabels holds the display label for each estado.
var AccesorioLabels = map[AccesorioEstado]string{
	AccesorioOK:      "Todo en orden",
	AccesorioPerdido: "Perdido",
	AccesorioFuera:   "Fuera de servicio",
}

// IsValid reports whether e is a known estado.
func (e AccesorioEstado) IsValid() bool {
	_, ok := AccesorioLabels[e]
	return ok
}

// Accesorio is one line of the equipment checklist.
type Accesorio struct {
	ID        string          `json:"id" bson:"_id"`
	Nombre    string          `json:"nombre" bson:"nombre"`
	Esperados int             `json:"esperados" bson:"esperados"`
	Contados  int             `json:"contados" bson:"contados"`
	Estado    AccesorioEstado `json:"estado" bson:"estado"`
	Obs       string          `json:"obs" bson:"obs"`
}

// Faltantes is how many units are missing from the expected count.
func (a Accesorio) Faltantes() int {
	if a.Contados >= a.Esperados {
		return 0
	}
	return a.Esperados - a.Contados
}

// DefaultAccesorios is the checklist a fresh gym starts with.
func DefaultAccesorios() []Accesorio {
	return []Accesorio{
		{Nombre: "Mancuernas", Esperados: 15, Contados: 15, Estado: AccesorioOK},
		{Nombre: "Bandas", Esperados: 5, Contados: 5, Estado: AccesorioOK},
		{Nombre: "Colchonetas", Esperados: 20, Contados: 18, Estado: AccesorioPerdido, Obs: "Faltan 2"},
		{Nombre: "Pesas", Esperados: 12, Contados: 12, Estado: AccesorioFuera, Obs: "Rotas 2"},
	}
}

// AccesorioSummary aggregates the checklist.
type AccesorioSummary struct {
	Total     int                     `json:"total"`
	PorEstado map[AccesorioEstado]int `json:"porEstado"`
	Faltantes int                     `json:"faltantes"`
}

// SummarizeAccesorios counts items per estado and sums missing units.
func SummarizeAccesorios(items []Accesorio) AccesorioSummary {
	sum := AccesorioSummary{
		Total:     len(items),
		PorEstado: map[AccesorioEstado]int{AccesorioOK: 0, AccesorioPerdido: 0, AccesorioFuera: 0},
	}
	for _, it := range items {
		sum.PorEstado[it.Estado]++
		sum.Faltantes += it.Faltantes()
	}
	return sum
}
