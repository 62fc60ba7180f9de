// Package gateway is the single point through which every backend call
// passes. It attaches the current credential as the Authorization header and
// translates transport and status failures into the apperr taxonomy. It holds
// no other state: persisting the credential is the session controller's job.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/apperr"
)

type Gateway struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetCredential sets the token attached to subsequent requests. An empty
// token means requests go out unauthenticated.
func (g *Gateway) SetCredential(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

// Credential returns the currently configured token.
func (g *Gateway) Credential() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.call(ctx, http.MethodPost, path, body, out)
}

func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.call(ctx, http.MethodPut, path, body, out)
}

func (g *Gateway) Patch(ctx context.Context, path string, body, out any) error {
	return g.call(ctx, http.MethodPatch, path, body, out)
}

func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.call(ctx, http.MethodDelete, path, nil, nil)
}

// errorBody is the shape the backend uses for rejections.
type errorBody struct {
	Error string `json:"error"`
}

func (g *Gateway) call(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.New().String()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return &apperr.NetworkError{Op: method + " " + path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.Credential(); token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[%s] [Gateway] %s %s failed: %v", requestID, method, path, err)
		return &apperr.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	log.Printf("[%s] [Gateway] %s %s -> %d (took %v)", requestID, method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return g.statusError(method, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &apperr.NetworkError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	return nil
}

func (g *Gateway) statusError(method, path string, resp *http.Response) error {
	var eb errorBody
	if raw, err := io.ReadAll(resp.Body); err == nil {
		_ = json.Unmarshal(raw, &eb)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &apperr.NotFoundError{Resource: path}
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return &apperr.AuthError{Message: eb.Error}
	}

	if eb.Error != "" {
		return &apperr.NetworkError{Op: method + " " + path, Err: errors.New(eb.Error)}
	}
	return &apperr.NetworkError{Op: method + " " + path, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
}
