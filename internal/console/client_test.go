package console

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/accessflow/accessflow/internal/core/domain"
)

func TestClient_Authenticate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Email != "alice@example.com" || req.Password != "pass1234" {
			t.Errorf("unexpected credentials: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{
			Token: "tok-123",
			User:  domain.User{ID: "1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleAdmin},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	sess, err := client.Authenticate(context.Background(), "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if sess.Token != "tok-123" {
		t.Fatalf("unexpected token: %s", sess.Token)
	}
	if sess.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", sess.User.Role)
	}
}

func TestClient_Authenticate_RejectedWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errorResponse{Message: "Invalid email or password"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Authenticate(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "Invalid email or password" {
		t.Fatalf("expected service message verbatim, got %q", err.Error())
	}
}

func TestClient_Authenticate_RejectedWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Authenticate(context.Background(), "a@example.com", "p")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "Login failed" {
		t.Fatalf("expected fallback message, got %q", err.Error())
	}
}

func TestClient_Authenticate_MalformedSuccessPayload(t *testing.T) {
	cases := []string{
		`not json`,
		`{"user":{"email":"a@example.com"}}`,
		`{"token":""}`,
	}
	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewClient(srv.URL, time.Second)
		_, err := client.Authenticate(context.Background(), "a@example.com", "p")
		srv.Close()

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("body %q: expected ErrInvalidCredentials, got %v", body, err)
			continue
		}
		if err.Error() != "Login failed" {
			t.Errorf("body %q: expected fallback message, got %q", body, err.Error())
		}
	}
}

func TestClient_Authenticate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Authenticate(context.Background(), "a@example.com", "p")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if err.Error() != "Network error. Please try again." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestClient_Authenticate_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	client := NewClient(srv.URL, 50*time.Millisecond)
	_, err := client.Authenticate(context.Background(), "a@example.com", "p")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork on timeout, got %v", err)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://localhost:8080/", time.Second)
	if client.baseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base URL: %s", client.baseURL)
	}
}
