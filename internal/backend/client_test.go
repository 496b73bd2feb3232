package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/config"
	"github.com/spec-kit/egresados-portal/internal/credstore"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/observability"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *credstore.MemStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credstore.NewMemStore()
	cfg := config.BackendConfig{BaseURL: server.URL, TimeoutSeconds: 5}
	return New(cfg, store, zap.NewNop(), observability.NewMetrics()), store
}

func TestClientAttachesBearerWhenStored(t *testing.T) {
	var gotAuth, gotRequestID, gotQuery string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.Query().Get("query")
		_ = json.NewEncoder(w).Encode([]domain.Vacante{{ID: "v1", CompanyID: "c1", Title: "Dev"}})
	}))

	if err := store.Set(context.Background(), "stored-token"); err != nil {
		t.Fatalf("store.Set: %v", err)
	}

	vacantes, err := client.Vacantes(context.Background(), "backend")
	if err != nil {
		t.Fatalf("Vacantes: %v", err)
	}
	if len(vacantes) != 1 || vacantes[0].ID != "v1" {
		t.Errorf("Vacantes = %+v, want one v1", vacantes)
	}
	if gotAuth != "Bearer stored-token" {
		t.Errorf("Authorization = %q, want Bearer stored-token", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotQuery != "backend" {
		t.Errorf("query = %q, want backend", gotQuery)
	}
}

func TestClientSendsUnauthenticatedWhenStoreEmpty(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Vacante{})
	}))

	if _, err := client.Vacantes(context.Background(), ""); err != nil {
		t.Fatalf("Vacantes: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientMapsRejectionDetail(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No tienes permiso para realizar esta acción."})
	}))
	// The adapter surfaces the rejection; the stored credential is untouched.
	if err := store.Set(context.Background(), "tok"); err != nil {
		t.Fatalf("store.Set: %v", err)
	}

	err := client.DeleteVacante(context.Background(), "v1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", apiErr.Status)
	}
	if apiErr.Detail != "No tienes permiso para realizar esta acción." {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
	if !apiErr.AuthFailure() {
		t.Error("AuthFailure() = false, want true for 403")
	}
	if token, _ := store.Get(context.Background()); token != "tok" {
		t.Errorf("store = %q, adapter must not clear it", token)
	}
}

func TestClientAuthFailurePredicate(t *testing.T) {
	cases := map[int]bool{
		http.StatusUnauthorized: true,
		http.StatusForbidden:    true,
		http.StatusNotFound:     false,
		http.StatusBadRequest:   false,
		http.StatusBadGateway:   false,
	}
	for status, want := range cases {
		err := &APIError{Status: status}
		if got := err.AuthFailure(); got != want {
			t.Errorf("AuthFailure(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestClientLogin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding login request: %v", err)
		}
		if req.Email != "ana@example.com" || req.Password == "" {
			t.Errorf("login request = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(AuthResponse{AccessToken: "fresh-token", TokenType: "bearer"})
	}))

	resp, err := client.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want fresh-token", resp.AccessToken)
	}
}

func TestClientAplicarHitsVacancyRoute(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	}))

	if err := client.Aplicar(context.Background(), "v42"); err != nil {
		t.Fatalf("Aplicar: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/vacantes/v42/aplicar" {
		t.Errorf("call = %s %s, want POST /vacantes/v42/aplicar", gotMethod, gotPath)
	}
}

func TestClientTransportFailure(t *testing.T) {
	store := credstore.NewMemStore()
	cfg := config.BackendConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}
	client := New(cfg, store, zap.NewNop(), observability.NewMetrics())

	_, err := client.Vacantes(context.Background(), "")
	if err == nil {
		t.Fatal("Vacantes = nil error, want transport failure")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure mapped to *APIError %+v, want plain error", apiErr)
	}
}
