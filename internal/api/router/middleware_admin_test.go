package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAdminTokenHeader(t *testing.T) {
	next, called := okHandler()
	h := requireAdminToken("secret")(next)

	req := httptest.NewRequest(http.MethodGet, "/customers/c1/config", nil)
	req.Header.Set(adminTokenHeader, "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !*called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestRequireAdminTokenQueryFallback(t *testing.T) {
	next, called := okHandler()
	h := requireAdminToken("secret")(next)

	req := httptest.NewRequest(http.MethodGet, "/customers/c1/config?admin_token=secret", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !*called {
		t.Fatal("expected query token to be accepted")
	}
}

func TestRequireAdminTokenRejectsWrongToken(t *testing.T) {
	next, called := okHandler()
	h := requireAdminToken("secret")(next)

	req := httptest.NewRequest(http.MethodGet, "/customers/c1/config", nil)
	req.Header.Set(adminTokenHeader, "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdminTokenEmptyIsNoop(t *testing.T) {
	next, called := okHandler()
	h := requireAdminToken("")(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/c1/config", nil))

	if !*called {
		t.Fatal("expected no-op middleware with empty token")
	}
}
