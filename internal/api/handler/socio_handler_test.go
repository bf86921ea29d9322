package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
	"github.com/gimnasio/gym-system/internal/core/validation"
)

type stubSocioService struct {
	listFn     func(text string, status domain.SocioStatus) ([]domain.Socio, error)
	refreshed  int
	overviewFn func() (*service.SocioOverview, error)
	createFn   func(draft validation.SocioDraft, key string) (*service.CreateResult, error)
	updateFn   func(id string, patch domain.SocioPatch) (*service.Result, error)
	deleteFn   func(id string) (*service.Result, error)
	lastUser   domain.Identity
}

func (s *stubSocioService) List(_ context.Context, user domain.Identity, text string, status domain.SocioStatus) ([]domain.Socio, error) {
	s.lastUser = user
	return s.listFn(text, status)
}

func (s *stubSocioService) Refresh(_ context.Context, user domain.Identity) error {
	s.refreshed++
	return nil
}

func (s *stubSocioService) Overview(_ context.Context, user domain.Identity) (*service.SocioOverview, error) {
	return s.overviewFn()
}

func (s *stubSocioService) Create(_ context.Context, user domain.Identity, draft validation.SocioDraft, key string) (*service.CreateResult, error) {
	return s.createFn(draft, key)
}

func (s *stubSocioService) Update(_ context.Context, user domain.Identity, id string, patch domain.SocioPatch) (*service.Result, error) {
	return s.updateFn(id, patch)
}

func (s *stubSocioService) Delete(_ context.Context, user domain.Identity, id string) (*service.Result, error) {
	return s.deleteFn(id)
}

func TestSocioHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		listFn: func(text string, status domain.SocioStatus) ([]domain.Socio, error) {
			assert.Equal(t, "ana", text)
			assert.Equal(t, domain.StatusActivo, status)
			return []domain.Socio{{ID: "a", Nombre: "Ana"}}, nil
		},
	}
	h := NewSocioHandler(stub)

	c, rec := jsonContext(e, http.MethodGet, "/v1/socios?q=ana&estado=Activo&refresh=true", "")
	withUser(c, "u1", domain.RoleStaff)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.refreshed)
	assert.Equal(t, "u1", stub.lastUser.UserID)

	var resp socioListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "a", resp.Data[0].ID)
}

func TestSocioHandler_List_InvalidEstado(t *testing.T) {
	e := newEcho()
	h := NewSocioHandler(&stubSocioService{})

	c, _ := jsonContext(e, http.MethodGet, "/v1/socios?estado=Suspendido", "")
	withUser(c, "u1", domain.RoleStaff)

	assert.Equal(t, http.StatusBadRequest, httpCode(t, h.List(c)))
}

func TestSocioHandler_List_RemoteFailure(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		listFn: func(string, domain.SocioStatus) ([]domain.Socio, error) {
			return nil, domain.ErrRemoteOperation
		},
	}
	h := NewSocioHandler(stub)

	c, _ := jsonContext(e, http.MethodGet, "/v1/socios", "")
	withUser(c, "u1", domain.RoleStaff)

	assert.ErrorIs(t, h.List(c), domain.ErrRemoteOperation)
}

func TestSocioHandler_Stats(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		overviewFn: func() (*service.SocioOverview, error) {
			return &service.SocioOverview{
				Stats:   domain.Stats{Total: 4, Activos: 3, Inactivos: 1, PorcentajeActivos: 75},
				PorTier: map[domain.MembershipTier]int{domain.TierVIP: 2},
			}, nil
		},
	}
	h := NewSocioHandler(stub)

	c, rec := jsonContext(e, http.MethodGet, "/v1/socios/stats", "")
	withUser(c, "u1", domain.RoleStaff)

	require.NoError(t, h.Stats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 4, resp["total"])
	assert.EqualValues(t, 75, resp["porcentajeActivos"])
	assert.Contains(t, resp, "porTier")
}

func TestSocioHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		createFn: func(draft validation.SocioDraft, key string) (*service.CreateResult, error) {
			assert.Equal(t, "Ana", draft.Nombre)
			assert.Equal(t, "k-1", key)
			return &service.CreateResult{Result: service.Result{Success: true, ID: "s1"}}, nil
		},
	}
	h := NewSocioHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/v1/socios", `{"nombre":"Ana","email":"ana@gym.mx"}`)
	c.Request().Header.Set("Idempotency-Key", "k-1")
	withUser(c, "u1", domain.RoleStaff)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/socios/s1", rec.Header().Get("Location"))
}

func TestSocioHandler_Create_Replay(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		createFn: func(validation.SocioDraft, string) (*service.CreateResult, error) {
			return &service.CreateResult{Result: service.Result{Success: true, ID: "s1"}, AlreadyExisted: true}, nil
		},
	}
	h := NewSocioHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/v1/socios", `{"nombre":"Ana","email":"ana@gym.mx"}`)
	withUser(c, "u1", domain.RoleStaff)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSocioHandler_Create_ValidationError(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		createFn: func(validation.SocioDraft, string) (*service.CreateResult, error) {
			return nil, &validation.Error{Fields: validation.FieldErrors{
				"nombre": {Kind: validation.RequiredFieldError, Message: "El nombre es requerido"},
			}}
		},
	}
	h := NewSocioHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/v1/socios", `{"email":"ana@gym.mx"}`)
	withUser(c, "u1", domain.RoleStaff)

	err := h.Create(c)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "nombre")
}

func TestSocioHandler_Create_Unauthenticated(t *testing.T) {
	e := newEcho()
	h := NewSocioHandler(&stubSocioService{})

	c, _ := jsonContext(e, http.MethodPost, "/v1/socios", `{}`)

	assert.Equal(t, http.StatusUnauthorized, httpCode(t, h.Create(c)))
}

func TestSocioHandler_Update(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		updateFn: func(id string, patch domain.SocioPatch) (*service.Result, error) {
			assert.Equal(t, "s1", id)
			require.NotNil(t, patch.Estado)
			assert.Equal(t, domain.StatusInactivo, *patch.Estado)
			assert.Nil(t, patch.Email)
			return &service.Result{Success: true, ID: id}, nil
		},
	}
	h := NewSocioHandler(stub)

	c, rec := jsonContext(e, http.MethodPatch, "/v1/socios/s1", `{"estado":"Inactivo"}`)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	withUser(c, "u1", domain.RoleStaff)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":"s1"}`, rec.Body.String())
}

func TestSocioHandler_Delete(t *testing.T) {
	e := newEcho()
	stub := &stubSocioService{
		deleteFn: func(id string) (*service.Result, error) {
			if id == "ghost" {
				return nil, domain.ErrSocioNotFound
			}
			return &service.Result{Success: true, ID: id}, nil
		},
	}
	h := NewSocioHandler(stub)

	c, rec := jsonContext(e, http.MethodDelete, "/v1/socios/s1", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	withUser(c, "u1", domain.RoleAdmin)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = jsonContext(e, http.MethodDelete, "/v1/socios/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	withUser(c, "u1", domain.RoleAdmin)

	assert.ErrorIs(t, h.Delete(c), domain.ErrSocioNotFound)
}
