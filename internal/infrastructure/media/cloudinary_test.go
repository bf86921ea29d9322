package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryUploader_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/gym/image/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "perfil", r.FormValue("upload_preset"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "ana.jpg", hdr.Filename)
		assert.Equal(t, "jpeg-bytes", string(b))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example.com/gym/ana.jpg"}`))
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(Config{BaseURL: srv.URL + "/", CloudName: "gym", UploadPreset: "perfil"}, srv.Client())
	url, err := u.Upload(context.Background(), "ana.jpg", strings.NewReader("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/gym/ana.jpg", url)
}

func TestCloudinaryUploader_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(Config{BaseURL: srv.URL, CloudName: "gym", UploadPreset: "nope"}, srv.Client())
	_, err := u.Upload(context.Background(), "x.jpg", strings.NewReader("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Upload preset not found")
}

func TestCloudinaryUploader_RequiresConfig(t *testing.T) {
	u := NewCloudinaryUploader(Config{BaseURL: "http://unused"}, nil)
	_, err := u.Upload(context.Background(), "x.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}
