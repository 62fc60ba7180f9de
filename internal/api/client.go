// Package api holds the endpoint bindings of the judge backend. Each method
// maps one observed endpoint onto the gateway; no state lives here.
package api

import (
	"context"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/apperr"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/gateway"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
)

type Client struct {
	gw *gateway.Gateway
}

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Authenticate exchanges a username and password for a token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	if err := c.gw.Post(ctx, "/api/auth/", credentialsRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &apperr.AuthError{}
	}
	return resp.Token, nil
}

// Register creates an account and, like Authenticate, returns its token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	if err := c.gw.Put(ctx, "/api/auth/", credentialsRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &apperr.AuthError{}
	}
	return resp.Token, nil
}

type isAdminRequest struct {
	Username string `json:"username"`
}

type isAdminResponse struct {
	Admin bool `json:"admin"`
}

// IsAdmin reports whether the named user holds the elevated role.
func (c *Client) IsAdmin(ctx context.Context, username string) (bool, error) {
	var resp isAdminResponse
	if err := c.gw.Post(ctx, "/api/auth/isAdmin", isAdminRequest{Username: username}, &resp); err != nil {
		return false, err
	}
	return resp.Admin, nil
}

func (c *Client) ListProblems(ctx context.Context) ([]model.ProblemSummary, error) {
	var problems []model.ProblemSummary
	if err := c.gw.Post(ctx, "/api/problem/list", nil, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func (c *Client) GetProblem(ctx context.Context, problemID string) (*model.Problem, error) {
	var problem model.Problem
	if err := c.gw.Post(ctx, "/api/problem/"+problemID, nil, &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

func (c *Client) CreateProblem(ctx context.Context, problem model.Problem) error {
	return c.gw.Put(ctx, "/api/problem/", problem, nil)
}

func (c *Client) UpdateProblem(ctx context.Context, problemID string, problem model.Problem) error {
	return c.gw.Patch(ctx, "/api/problem/"+problemID, problem, nil)
}

func (c *Client) DeleteProblem(ctx context.Context, problemID string) error {
	return c.gw.Delete(ctx, "/api/problem/"+problemID)
}

type submitRequest struct {
	ProblemID string         `json:"problemId"`
	Language  model.Language `json:"language"`
	Source    string         `json:"source"`
}

// Submit hands a solution to the judge. Grading is asynchronous; progress
// arrives on the push channel.
func (c *Client) Submit(ctx context.Context, problemID string, language model.Language, source string) error {
	return c.gw.Put(ctx, "/api/judge/", submitRequest{ProblemID: problemID, Language: language, Source: source}, nil)
}

// History fetches the full submission history visible to the session.
func (c *Client) History(ctx context.Context) ([]model.SubmissionRecord, error) {
	var records []model.SubmissionRecord
	if err := c.gw.Post(ctx, "/api/judge/history", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
