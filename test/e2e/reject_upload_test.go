package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/test/testutil"
)

type errorResponse struct {
	Error string `json:"error"`
}

func TestRejectNonVideoUploadE2E(t *testing.T) {
	srv, _ := startServer(t)
	token := testutil.MakeFacultyToken(t, 42)

	resp := doJSON(t, http.MethodPost, srv.URL+"/recordings/upload-link", token,
		[]byte(`{"name":"notes.txt"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload-link status = %d; want %d", resp.StatusCode, http.StatusCreated)
	}
	var link port.GenerateUploadLinkOutput
	decodeInto(t, resp, &link)

	data := testutil.GenerateTextFile()
	putReq, err := http.NewRequest(http.MethodPut, link.URL, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("build PUT request: %v", err)
	}
	putReq.Header.Set("Content-Type", "text/plain")
	putResp, err := http.DefaultClient.Do(putReq)
	if err != nil {
		t.Fatalf("PUT to presigned URL: %v", err)
	}
	putResp.Body.Close()
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d; want %d", putResp.StatusCode, http.StatusOK)
	}

	validateURL := fmt.Sprintf("%s/recordings/%s/validate", srv.URL, link.ID)

	// First validation rejects the file outright
	resp = doJSON(t, http.MethodPost, validateURL, token, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("validate status = %d; want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	var body errorResponse
	decodeInto(t, resp, &body)
	if !strings.Contains(body.Error, "mime-type") {
		t.Errorf("error = %q; want it to mention the mime-type", body.Error)
	}

	// A second attempt finds the recording no longer pending
	resp = doJSON(t, http.MethodPost, validateURL, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("re-validate status = %d; want %d", resp.StatusCode, http.StatusConflict)
	}

	// Details stay unavailable for a failed recording
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/recordings/%s", srv.URL, link.ID), token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("get status = %d; want %d", resp.StatusCode, http.StatusConflict)
	}

	// Validating an ID that was never issued is a 404
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/recordings/%s/validate", srv.URL, uuid.NewString()), token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown ID status = %d; want %d", resp.StatusCode, http.StatusNotFound)
	}
}
