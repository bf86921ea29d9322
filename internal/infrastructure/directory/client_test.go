package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
)

// fakeAPI serves the member endpoints from memory.
type fakeAPI struct {
	mu     sync.Mutex
	socios []domain.Socio
	seq    int
	auth   string
	query  string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.auth = r.Header.Get("Authorization")
	f.query = r.URL.RawQuery
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/socios":
		_ = json.NewEncoder(w).Encode(map[string]any{"data": f.socios})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/socios":
		var s domain.Socio
		_ = json.NewDecoder(r.Body).Decode(&s)
		f.seq++
		s.ID = "s" + string(rune('0'+f.seq))
		s.Estado = domain.StatusActivo
		f.socios = append([]domain.Socio{s}, f.socios...)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": s.ID})
	case r.Method == http.MethodDelete:
		id := r.URL.Path[len("/v1/socios/"):]
		for i, s := range f.socios {
			if s.ID == id {
				f.socios = append(f.socios[:i], f.socios[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "socio not found"})
	case r.Method == http.MethodPatch:
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "remote operation failed"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestClient_DrivesRoster(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	client := NewClient(srv.URL, "tok", srv.Client())
	session := domain.NewSession(domain.Identity{UserID: "cli"}, time.Now())
	roster := service.NewRoster(client, session, zerolog.Nop())

	res := roster.Add(context.Background(), domain.Socio{Nombre: "Ana", Email: "ana@gym.mx"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "s1", res.ID)
	assert.Equal(t, "Bearer tok", api.auth)

	got, ok := roster.Find("s1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusActivo, got.Estado)

	res = roster.Remove(context.Background(), "s1")
	require.True(t, res.Success, res.Error)
	assert.Empty(t, roster.Socios())
	assert.Equal(t, "refresh=true", api.query, "reload must bypass the server's cached roster")
}

func TestClient_ErrorMapping(t *testing.T) {
	srv := httptest.NewServer(&fakeAPI{})
	defer srv.Close()
	client := NewClient(srv.URL, "", srv.Client())

	err := client.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSocioNotFound)

	nombre := "X"
	err = client.Update(context.Background(), "s1", domain.SocioPatch{Nombre: &nombre})
	require.Error(t, err)
	assert.Equal(t, "remote operation failed", err.Error())
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"missing or invalid token"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", srv.Client()).GetAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
