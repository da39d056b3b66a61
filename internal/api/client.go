package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	apperrors "github.com/SOTO729/Evaluaasiv3-sub001/pkg/errors"
	"github.com/SOTO729/Evaluaasiv3-sub001/pkg/logger"
)

// Client talks to the Evaluaasi backend REST API. It is stateless and
// safe for concurrent use; the caller supplies the session token per
// call because one client serves every chat session in the gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do performs one authenticated round trip and decodes the response into
// out (skipped when out is nil). Transport failures map to network
// errors, 401/403 to auth errors, everything else non-2xx to upstream.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal("failed to encode request body")
		}
		reader = bytes.NewReader(jsonData)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.Internal("failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Backend request failed")
		return apperrors.Network("backend unreachable", err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Backend request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized("session expired or invalid")
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden("not allowed for this role")
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound("resource not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperrors.Upstream(resp.StatusCode, fmt.Sprintf("backend responded with status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Network("failed to decode backend response", err)
	}
	return nil
}

// ListConversations fetches one page of the viewer's conversations.
func (c *Client) ListConversations(ctx context.Context, token string, filter models.ConversationFilter) (*models.ConversationPage, error) {
	q := url.Values{}
	if filter.Status != "" && filter.Status != models.StatusFilterAll {
		q.Set("status", filter.Status)
	}
	q.Set("page", strconv.Itoa(filter.Page))
	q.Set("per_page", strconv.Itoa(filter.PerPage))
	if filter.AssignedToMe {
		q.Set("assigned_to_me", "true")
	}

	var page models.ConversationPage
	if err := c.do(ctx, token, http.MethodGet, "/conversations", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateConversation opens a new support thread.
func (c *Client) CreateConversation(ctx context.Context, token string, input models.NewConversationInput) (*models.Conversation, error) {
	var conv models.Conversation
	if err := c.do(ctx, token, http.MethodPost, "/conversations", nil, input, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListMessages fetches one page of a conversation's messages, oldest
// first.
func (c *Client) ListMessages(ctx context.Context, token string, conversationID int64, page, perPage int) (*models.MessagePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var msgs models.MessagePage
	path := fmt.Sprintf("/conversations/%d/messages", conversationID)
	if err := c.do(ctx, token, http.MethodGet, path, q, nil, &msgs); err != nil {
		return nil, err
	}
	return &msgs, nil
}

// SendMessage posts a new message to a conversation.
func (c *Client) SendMessage(ctx context.Context, token string, conversationID int64, out models.OutgoingMessage) (*models.Message, error) {
	var msg models.Message
	path := fmt.Sprintf("/conversations/%d/messages", conversationID)
	if err := c.do(ctx, token, http.MethodPost, path, nil, out, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead advances the viewer's read watermark for a conversation.
func (c *Client) MarkRead(ctx context.Context, token string, conversationID, lastMessageID int64) error {
	path := fmt.Sprintf("/conversations/%d/read", conversationID)
	body := map[string]int64{"last_message_id": lastMessageID}
	return c.do(ctx, token, http.MethodPost, path, nil, body, nil)
}

// ChangeStatus transitions a conversation's status server-side. The
// returned conversation is informational; callers re-fetch the list
// rather than patching local state.
func (c *Client) ChangeStatus(ctx context.Context, token string, conversationID int64, status models.ConversationStatus) (*models.Conversation, error) {
	var conv models.Conversation
	path := fmt.Sprintf("/conversations/%d/status", conversationID)
	body := map[string]models.ConversationStatus{"status": status}
	if err := c.do(ctx, token, http.MethodPatch, path, nil, body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// SearchCandidates queries the user directory for candidates matching
// the free-text query. An empty query returns the default page.
func (c *Client) SearchCandidates(ctx context.Context, token, query string) ([]models.Candidate, error) {
	q := url.Values{}
	q.Set("role", string(models.RoleCandidate))
	if query != "" {
		q.Set("q", query)
	}

	var result struct {
		Items []models.Candidate `json:"items"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/users/search", q, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}
