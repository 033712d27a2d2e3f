package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "wanjiru@example.com", body["email"])
		assert.Equal(t, map[string]any{"full_name": "Wanjiru Kamau"}, body["data"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","email":"wanjiru@example.com","user_metadata":{"full_name":"Wanjiru Kamau"}}`))
	}))
	defer ts.Close()

	client := NewClient(Config{URL: ts.URL + "/", APIKey: "anon-key"})

	user, err := client.SignUp(context.Background(), "wanjiru@example.com", "secret1", "Wanjiru Kamau")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Wanjiru Kamau", user.UserMetadata.FullName)
}

func TestSignUp_SessionShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok","user":{"id":"user-2","email":"otieno@example.com"}}`))
	}))
	defer ts.Close()

	user, err := NewClient(Config{URL: ts.URL}).SignUp(context.Background(), "otieno@example.com", "secret1", "")
	assert.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)
}

func TestSignIn(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","token_type":"bearer","expires_in":3600,"user":{"id":"user-1"}}`))
	}))
	defer ts.Close()

	session, err := NewClient(Config{URL: ts.URL}).SignIn(context.Background(), "a@b.c", "pw")
	assert.NoError(t, err)
	assert.Equal(t, "tok", session.AccessToken)
	assert.Equal(t, 3600, session.ExpiresIn)
	assert.Equal(t, "user-1", session.User.ID)
}

func TestSignIn_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer ts.Close()

	_, err := NewClient(Config{URL: ts.URL}).SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	var apiErr *ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestGetUser_Cache(t *testing.T) {
	var requestCount int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"user-1","email":"a@b.c"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{URL: ts.URL, APIKey: "anon-key", CacheTTL: time.Minute})

	user, err := client.GetUser(context.Background(), "user-token")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))

	_, err = client.GetUser(context.Background(), "user-token")
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount), "Should not increment request count due to caching")
}

func TestGetUser_SlowLookupDoesNotBlockCachedTokens(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer slow" {
			close(slowStarted)
			<-release
			w.Write([]byte(`{"id":"user-slow"}`))
			return
		}
		w.Write([]byte(`{"id":"user-good"}`))
	}))
	defer ts.Close()
	defer close(release)

	client := NewClient(Config{URL: ts.URL, CacheTTL: time.Minute})
	_, err := client.GetUser(context.Background(), "good")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := client.GetUser(context.Background(), "slow")
		done <- err
	}()
	<-slowStarted

	start := time.Now()
	user, err := client.GetUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-good", user.ID)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	release <- struct{}{}
	assert.NoError(t, <-done)
}

func TestGetUser_ConcurrentMissesShareOneRequest(t *testing.T) {
	var requestCount int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		<-release
		w.Write([]byte(`{"id":"user-1"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{URL: ts.URL, CacheTTL: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := client.GetUser(context.Background(), "shared-token")
			assert.NoError(t, err)
			assert.Equal(t, "user-1", user.ID)
		}()
	}

	// let the callers pile up behind the first request
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
}

func TestGetUser_InvalidToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401,"msg":"invalid JWT"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{URL: ts.URL, CacheTTL: time.Minute})

	_, err := client.GetUser(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = client.GetUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUser_Brotli(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "br", r.Header.Get("Accept-Encoding"))

		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		bw.Write([]byte(`{"id":"user-br","email":"br@example.com"}`))
		bw.Close()

		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	}))
	defer ts.Close()

	user, err := NewClient(Config{URL: ts.URL}).GetUser(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Equal(t, "user-br", user.ID)
}

func TestGetUser_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`invalid-json`))
	}))
	defer ts.Close()

	_, err := NewClient(Config{URL: ts.URL}).GetUser(context.Background(), "tok")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}
