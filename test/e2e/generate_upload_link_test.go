package e2e

import (
	"net/http"
	"strings"
	"testing"

	"github.com/metaview/recordings-ms-go/test/testutil"
)

func TestGenerateUploadLinkErrorsE2E(t *testing.T) {
	srv, _ := startServer(t)
	token := testutil.MakeFacultyToken(t, 42)

	t.Run("MissingToken", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/recordings/upload-link", "",
			[]byte(`{"name":"lecture.mp4"}`))
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusUnauthorized)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/recordings/upload-link", "not-a-jwt",
			[]byte(`{"name":"lecture.mp4"}`))
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusUnauthorized)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/recordings/upload-link", token,
			[]byte(`{"name":`))
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("MissingName", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/recordings/upload-link", token,
			[]byte(`{}`))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("NameTooLong", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/recordings/upload-link", token,
			[]byte(`{"name":"`+strings.Repeat("a", 90)+`.mp4"}`))
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("UnknownEndpoint", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/does-not-exist", token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("WrongMethod", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/recordings/upload-link", token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusMethodNotAllowed)
		}
	})
}
