package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/controller/server"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/infra"
	"github.com/scanbook/scanbook/pkg/infra/session"
	"github.com/scanbook/scanbook/pkg/usecase"
)

type staticEngine struct {
	report string
	err    error
}

func (x *staticEngine) Invoke(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
	if x.err != nil {
		return nil, x.err
	}
	return &interfaces.InvokeScanOutput{MarkdownReport: x.report}, nil
}

func newTestServer(t *testing.T, engine interfaces.WorkflowEngine) *server.Server {
	t.Helper()
	source := gt.R1(session.New("test-secret")).NoError(t)
	uc := usecase.New(infra.New(
		infra.WithWorkflowEngine(engine),
		infra.WithTokenSource(source),
	))
	return server.New(uc, server.WithTokenSource(source))
}

func doJSON(t *testing.T, srv *server.Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw := gt.R1(json.Marshal(body)).NoError(t)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, srv *server.Server, email string) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "correct horse battery",
		"name":     "Test User",
	})
	gt.V(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		Token string `json:"token"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.V(t, resp.Token).NotEqual("")
	return resp.Token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &staticEngine{})

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, rec.Body.String()).Equal("ok")
}

func TestAuthGate(t *testing.T) {
	srv := newTestServer(t, &staticEngine{report: "# x"})

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/scan"},
		{http.MethodGet, "/api/scans"},
		{http.MethodGet, "/api/scans/some-id/report"},
		{http.MethodGet, "/api/scans/some-id/report-pdf"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := doJSON(t, srv, route.method, route.path, "", nil)
			gt.V(t, rec.Code).Equal(http.StatusUnauthorized)

			rec = doJSON(t, srv, route.method, route.path, "garbage-token", nil)
			gt.V(t, rec.Code).Equal(http.StatusUnauthorized)
		})
	}
}

func TestSignUpAndLogin(t *testing.T) {
	srv := newTestServer(t, &staticEngine{})
	signUp(t, srv, "alice@example.com")

	t.Run("duplicate signup yields conflict", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email":    "alice@example.com",
			"password": "another password",
			"name":     "Alice Again",
		})
		gt.V(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("login returns token", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "correct horse battery",
		})
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.S(t, rec.Body.String()).Contains(`"token"`)
	})

	t.Run("bad credentials yield 401", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		gt.V(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

// TestScanLifecycle walks the full path: trigger a scan, list the history,
// fetch the report, export the PDF, and verify another user sees none of it.
func TestScanLifecycle(t *testing.T) {
	srv := newTestServer(t, &staticEngine{report: "# Findings\n\n- port 22 open"})

	aliceToken := signUp(t, srv, "alice@example.com")
	bobToken := signUp(t, srv, "bob@example.com")

	// Alice triggers a scan
	rec := doJSON(t, srv, http.MethodPost, "/api/scan", aliceToken, map[string]string{
		"target":   "10.0.0.5",
		"scanType": "nmap",
	})
	gt.V(t, rec.Code).Equal(http.StatusCreated)

	var created model.Scan
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	gt.V(t, created.MarkdownReport).Equal("# Findings\n\n- port 22 open")
	gt.V(t, string(created.ScanType)).Equal("nmap")

	// Listing shows one digest without report text
	rec = doJSON(t, srv, http.MethodGet, "/api/scans", aliceToken, nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var digests []model.ScanDigest
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &digests))
	gt.A(t, digests).Length(1)
	gt.V(t, digests[0].ID).Equal(created.ID)
	gt.True(t, !strings.Contains(rec.Body.String(), "markdownReport"))

	// Report fetch returns the identical markdown
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/scans/%s/report", created.ID), aliceToken, nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var report struct {
		MarkdownReport string `json:"markdownReport"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	gt.V(t, report.MarkdownReport).Equal("# Findings\n\n- port 22 open")

	// PDF export is a download
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/scans/%s/report-pdf", created.ID), aliceToken, nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, rec.Header().Get("Content-Type")).Equal("application/pdf")
	gt.S(t, rec.Header().Get("Content-Disposition")).Contains("attachment")
	gt.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	// Bob sees an empty history and a 404 for Alice's record
	rec = doJSON(t, srv, http.MethodGet, "/api/scans", bobToken, nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, strings.TrimSpace(rec.Body.String())).Equal("[]")

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/scans/%s/report", created.ID), bobToken, nil)
	gt.V(t, rec.Code).Equal(http.StatusNotFound)

	// Unknown ID yields the same response shape as the foreign record
	recMissing := doJSON(t, srv, http.MethodGet, "/api/scans/does-not-exist/report", bobToken, nil)
	gt.V(t, recMissing.Code).Equal(http.StatusNotFound)
	gt.V(t, recMissing.Body.String()).Equal(rec.Body.String())
}

func TestTriggerScanUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &staticEngine{
		err: goerr.Wrap(types.ErrUpstreamFailed, "engine returned 500",
			goerr.V("body", "secret internal details"),
		),
	})
	token := signUp(t, srv, "dave@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/scan", token, map[string]string{
		"target":   "10.0.0.5",
		"scanType": "nmap",
	})
	gt.V(t, rec.Code).Equal(http.StatusBadGateway)

	// Upstream diagnostics stay in the logs, not in the client response
	gt.True(t, !strings.Contains(rec.Body.String(), "secret internal details"))

	// And no record was created
	rec = doJSON(t, srv, http.MethodGet, "/api/scans", token, nil)
	gt.V(t, strings.TrimSpace(rec.Body.String())).Equal("[]")
}

func TestTriggerScanValidation(t *testing.T) {
	srv := newTestServer(t, &staticEngine{report: "# x"})
	token := signUp(t, srv, "carol@example.com")

	t.Run("missing target", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/scan", token, map[string]string{
			"scanType": "nmap",
		})
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown scan type", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/scan", token, map[string]string{
			"target":   "10.0.0.5",
			"scanType": "zmap",
		})
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("broken JSON body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader("{broken"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
