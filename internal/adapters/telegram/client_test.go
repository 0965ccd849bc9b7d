package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grouppass/internal/domain"
)

func TestClient_CreateInviteLink(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {"invite_link": "https://t.me/+AbCdEf"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "123:token", -100123, WithBaseURL(srv.URL))
	before := time.Now().Add(time.Hour).Unix()
	link, err := c.CreateInviteLink(context.Background(), time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "https://t.me/+AbCdEf", link)
	assert.Equal(t, "/bot123:token/createChatInviteLink", gotPath)
	assert.Equal(t, float64(-100123), gotBody["chat_id"])
	assert.Equal(t, float64(1), gotBody["member_limit"])

	expire := int64(gotBody["expire_date"].(float64))
	assert.GreaterOrEqual(t, expire, before)
	assert.LessOrEqual(t, expire, time.Now().Add(time.Hour).Unix())
}

func TestClient_CreateInviteLink_PlatformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": false, "error_code": 429, "description": "Too Many Requests: retry after 5"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "123:token", -100123, WithBaseURL(srv.URL))
	_, err := c.CreateInviteLink(context.Background(), time.Hour)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInviteCreation), "got %v", err)

	var platformErr *domain.GroupPlatformError
	require.True(t, errors.As(err, &platformErr))
	assert.Equal(t, 429, platformErr.Code)
	assert.Contains(t, platformErr.Description, "Too Many Requests")
}

func TestClient_CreateInviteLink_MissingLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true, "result": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "123:token", -100123, WithBaseURL(srv.URL))
	_, err := c.CreateInviteLink(context.Background(), time.Hour)
	assert.True(t, errors.Is(err, domain.ErrInviteCreation), "got %v", err)
}

func TestClient_UnbanMember(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, "/bot123:token/unbanChatMember", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok": true, "result": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "123:token", -100123, WithBaseURL(srv.URL))
	err := c.UnbanMember(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, float64(42), gotBody["user_id"])
	assert.Equal(t, false, gotBody["only_if_banned"])
}

func TestClient_UnbanMember_PlatformRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "123:token", -100123, WithBaseURL(srv.URL))
	err := c.UnbanMember(context.Background(), 42)

	var platformErr *domain.GroupPlatformError
	require.True(t, errors.As(err, &platformErr))
	assert.Equal(t, "Bad Request: chat not found", platformErr.Description)
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects the client disconnect and
		// cancels the request context; otherwise srv.Close hangs forever.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "123:token", -100123, WithBaseURL(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.CreateInviteLink(ctx, time.Hour)
	require.Error(t, err)
}
