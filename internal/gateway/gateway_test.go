package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/apperr"
)

func TestCredentialHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL)
	ctx := context.Background()

	// Unauthenticated by default.
	if err := gw.Post(ctx, "/x", nil, nil); err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous request carried Authorization %q", gotAuth)
	}

	gw.SetCredential("tok-123")
	if err := gw.Post(ctx, "/x", nil, nil); err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	if gotAuth != "tok-123" {
		t.Fatalf("Authorization = %q, want tok-123", gotAuth)
	}

	// Clearing the credential makes requests anonymous again.
	gw.SetCredential("")
	if err := gw.Post(ctx, "/x", nil, nil); err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("request after clear carried Authorization %q", gotAuth)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/denied":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Bad credentials"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
		}
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL)
	ctx := context.Background()

	var nferr *apperr.NotFoundError
	if err := gw.Post(ctx, "/missing", nil, nil); !errors.As(err, &nferr) {
		t.Fatalf("404 mapped to %v, want NotFoundError", err)
	}

	var aerr *apperr.AuthError
	err := gw.Post(ctx, "/denied", nil, nil)
	if !errors.As(err, &aerr) {
		t.Fatalf("401 mapped to %v, want AuthError", err)
	}
	if aerr.Message != "Bad credentials" {
		t.Fatalf("AuthError message = %q", aerr.Message)
	}

	var nerr *apperr.NetworkError
	if err := gw.Post(ctx, "/boom", nil, nil); !errors.As(err, &nerr) {
		t.Fatalf("500 mapped to %v, want NetworkError", err)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	gw := NewGateway(srv.URL)

	var nerr *apperr.NetworkError
	if err := gw.Post(context.Background(), "/x", nil, nil); !errors.As(err, &nerr) {
		t.Fatalf("transport failure mapped to %v, want NetworkError", err)
	}
}
