package syncx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tinashem/dukabook/internal/logging"
	"github.com/tinashem/dukabook/internal/models"
)

// HTTPRemote pushes mutations to the sync server over HTTP/JSON with bearer
// authentication. A 409 response carries the remote's record version and is
// reported as a conflict, not an error.
type HTTPRemote struct {
	client  *http.Client
	log     logging.Logger
	baseURL string
	token   string
}

func NewHTTPRemote(baseURL string, log logging.Logger) *HTTPRemote {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}
	return &HTTPRemote{client: client, log: log, baseURL: baseURL}
}

// SetToken installs the access token used for subsequent pushes.
func (r *HTTPRemote) SetToken(token string) {
	r.token = token
}

// checkToken rejects a push before any network round trip when the token's
// expiry claim has already passed. The signature is not verified here; the
// server remains the authority and still gets the final say.
func (r *HTTPRemote) checkToken() error {
	if r.token == "" {
		return ErrUnauthorized
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.token, claims); err != nil {
		return nil // opaque tokens are passed through as-is
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}

type pushRequest struct {
	TableName string          `json:"tableName"`
	RecordID  string          `json:"recordId"`
	Action    models.Action   `json:"action"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Force     bool            `json:"force,omitempty"`
}

func (r *HTTPRemote) Push(ctx context.Context, e *models.OutboxEntry, force bool) (*PushResult, error) {
	if err := r.checkToken(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(pushRequest{
		TableName: e.TableName,
		RecordID:  e.RecordID,
		Action:    e.Action,
		Payload:   e.Payload,
		Force:     force,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/api/v1/sync/push", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)

	r.log.Debug(ctx, "pushing mutation",
		"table", e.TableName, "record", e.RecordID, "action", e.Action, "force", force)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return &PushResult{Status: PushAccepted}, nil

	case http.StatusConflict:
		var remote RemoteRecord
		if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
			return nil, fmt.Errorf("failed to decode conflict response: %w", err)
		}
		return &PushResult{Status: PushConflict, Remote: &remote}, nil

	case http.StatusUnauthorized:
		return nil, ErrUnauthorized

	default:
		respBody, _ := io.ReadAll(resp.Body)
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server error: %s", errResp.Error)
		}
		return nil, fmt.Errorf("server returned status: %d", resp.StatusCode)
	}
}
