package musicapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTokenServer(t *testing.T, exchanges *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		id, secret, ok := r.BasicAuth()
		if !ok || id != "client" || secret != "secret" {
			t.Errorf("unexpected basic auth %q:%q", id, secret)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("expected client_credentials grant, got %q", got)
		}
		n := atomic.AddInt32(exchanges, 1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`))
			return
		}
		w.Write([]byte(`{"access_token":"tok-2","token_type":"Bearer","expires_in":3600}`))
	}))
}

func TestClientCredentialsCachesToken(t *testing.T) {
	var exchanges int32
	srv := newTokenServer(t, &exchanges)
	defer srv.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	provider := NewClientCredentials("client", "secret", srv.URL, srv.Client())
	provider.now = func() time.Time { return now }

	first, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if first.Value != "tok-1" {
		t.Fatalf("expected tok-1, got %q", first.Value)
	}
	if !first.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", first.ExpiresAt)
	}

	now = now.Add(59 * time.Minute)
	second, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if second.Value != "tok-1" {
		t.Fatalf("expected cached token, got %q", second.Value)
	}
	if got := atomic.LoadInt32(&exchanges); got != 1 {
		t.Fatalf("expected 1 exchange, got %d", got)
	}

	// Inside the refresh margin the token is no longer handed out.
	now = now.Add(40 * time.Second)
	third, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if third.Value != "tok-2" {
		t.Fatalf("expected refreshed token, got %q", third.Value)
	}
	if got := atomic.LoadInt32(&exchanges); got != 2 {
		t.Fatalf("expected 2 exchanges, got %d", got)
	}
}

func TestClientCredentialsConcurrentCallersShareExchange(t *testing.T) {
	var exchanges int32
	srv := newTokenServer(t, &exchanges)
	defer srv.Close()

	provider := NewClientCredentials("client", "secret", srv.URL, srv.Client())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := provider.AccessToken(context.Background()); err != nil {
				t.Errorf("AccessToken: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&exchanges); got != 1 {
		t.Fatalf("expected a single exchange, got %d", got)
	}
}

func TestClientCredentialsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := NewClientCredentials("client", "wrong", srv.URL, srv.Client())
	_, err := provider.AccessToken(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", authErr.Status)
	}
	if authErr.Body == "" {
		t.Fatal("expected response body to be kept")
	}
}

func TestAccessTokenValid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token AccessToken
		want  bool
	}{
		{"empty", AccessToken{}, false},
		{"fresh", AccessToken{Value: "x", ExpiresAt: now.Add(time.Hour)}, true},
		{"inside margin", AccessToken{Value: "x", ExpiresAt: now.Add(10 * time.Second)}, false},
		{"expired", AccessToken{Value: "x", ExpiresAt: now.Add(-time.Second)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Valid(now); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
