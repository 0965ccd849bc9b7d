package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"grouppass/internal/domain"
)

const defaultBaseURL = "https://api.telegram.org"

// defaultTimeout bounds every Bot API call so a hanging platform request
// cannot pin an HTTP handler forever.
const defaultTimeout = 10 * time.Second

// Client implements domain.GroupManager against the Telegram Bot API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     int64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Bot API base URL. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// NewClient returns a Bot API client for the given token and target chat.
// A nil httpClient gets a client with the default timeout.
func NewClient(httpClient *http.Client, token string, chatID int64, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		token:      token,
		chatID:     chatID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the Bot API envelope shared by all methods.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// CreateInviteLink mints a single-use invite link that the platform expires
// ttl from now (member_limit 1, expire_date now+ttl).
func (c *Client) CreateInviteLink(ctx context.Context, ttl time.Duration) (string, error) {
	payload := map[string]any{
		"chat_id":      c.chatID,
		"expire_date":  time.Now().Add(ttl).Unix(),
		"member_limit": 1,
	}
	raw, err := c.call(ctx, "createChatInviteLink", payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInviteCreation, err)
	}

	var result struct {
		InviteLink string `json:"invite_link"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: decode result: %w", domain.ErrInviteCreation, err)
	}
	if result.InviteLink == "" {
		return "", fmt.Errorf("%w: response carried no invite_link", domain.ErrInviteCreation)
	}
	return result.InviteLink, nil
}

// UnbanMember lifts a ban on the member. only_if_banned is false so the call
// succeeds even when the member was never banned, matching the recovery
// endpoint's idempotent contract.
func (c *Client) UnbanMember(ctx context.Context, memberID int64) error {
	payload := map[string]any{
		"chat_id":        c.chatID,
		"user_id":        memberID,
		"only_if_banned": false,
	}
	if _, err := c.call(ctx, "unbanChatMember", payload); err != nil {
		return fmt.Errorf("unban member %d: %w", memberID, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return nil, &domain.GroupPlatformError{Code: envelope.ErrorCode, Description: envelope.Description}
	}
	return envelope.Result, nil
}
