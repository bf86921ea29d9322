package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
)

type stubAccesorioService struct {
	items   []domain.Accesorio
	applied []service.AccesorioChange
}

func (s *stubAccesorioService) List(context.Context) ([]domain.Accesorio, error) {
	return s.items, nil
}

func (s *stubAccesorioService) Apply(_ context.Context, id string, ch service.AccesorioChange) (*domain.Accesorio, error) {
	s.applied = append(s.applied, ch)
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if ch.Estado != nil {
			s.items[i].Estado = *ch.Estado
		}
		if ch.Contados != nil {
			s.items[i].Contados = *ch.Contados
		}
		if ch.Obs != nil {
			s.items[i].Obs = *ch.Obs
		}
		item := s.items[i]
		return &item, nil
	}
	return nil, domain.ErrAccesorioNotFound
}

func (s *stubAccesorioService) Summary(context.Context) (domain.AccesorioSummary, error) {
	return domain.SummarizeAccesorios(s.items), nil
}

func newStubAccesorios() *stubAccesorioService {
	return &stubAccesorioService{items: []domain.Accesorio{
		{ID: "1", Nombre: "Mancuernas", Esperados: 10, Contados: 8, Estado: domain.AccesorioOK},
		{ID: "2", Nombre: "Colchonetas", Esperados: 5, Contados: 5, Estado: domain.AccesorioFuera},
	}}
}

func TestAccesorioHandler_List(t *testing.T) {
	e := newEcho()
	h := NewAccesorioHandler(newStubAccesorios())

	c, rec := jsonContext(e, http.MethodGet, "/v1/accesorios", "")
	require.NoError(t, h.List(c))

	var resp accesorioListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Todo en orden", resp.Data[0].EstadoLabel)
	assert.Equal(t, 2, resp.Data[0].Faltantes)
	assert.Equal(t, "Fuera de servicio", resp.Data[1].EstadoLabel)
}

func TestAccesorioHandler_Update(t *testing.T) {
	e := newEcho()
	stub := newStubAccesorios()
	h := NewAccesorioHandler(stub)

	c, rec := jsonContext(e, http.MethodPatch, "/v1/accesorios/1", `{"estado":"PERDIDO","contados":3}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, stub.applied, 1)
	assert.Nil(t, stub.applied[0].Obs)

	var view accesorioView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, domain.AccesorioPerdido, view.Estado)
	assert.Equal(t, "Perdido", view.EstadoLabel)
	assert.Equal(t, 7, view.Faltantes)
}

func TestAccesorioHandler_Update_EmptyBody(t *testing.T) {
	e := newEcho()
	h := NewAccesorioHandler(newStubAccesorios())

	c, _ := jsonContext(e, http.MethodPatch, "/v1/accesorios/1", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.Equal(t, http.StatusBadRequest, httpCode(t, h.Update(c)))
}

func TestAccesorioHandler_Update_Unknown(t *testing.T) {
	e := newEcho()
	h := NewAccesorioHandler(newStubAccesorios())

	c, _ := jsonContext(e, http.MethodPatch, "/v1/accesorios/99", `{"obs":"roto"}`)
	c.SetParamNames("id")
	c.SetParamValues("99")
	assert.ErrorIs(t, h.Update(c), domain.ErrAccesorioNotFound)
}

func TestAccesorioHandler_Summary(t *testing.T) {
	e := newEcho()
	h := NewAccesorioHandler(newStubAccesorios())

	c, rec := jsonContext(e, http.MethodGet, "/v1/accesorios/summary", "")
	require.NoError(t, h.Summary(c))

	var sum domain.AccesorioSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.PorEstado[domain.AccesorioFuera])
}
