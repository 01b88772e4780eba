package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/pkg/config"
	"github.com/noah-isme/careplan-api/pkg/middleware/requestid"
)

// APIError is a non-2xx answer from the hosted auth API.
type APIError struct {
	Status      int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Message     string `json:"msg"`
}

func (e *APIError) Error() string {
	msg := e.Description
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = e.Code
	}
	return fmt.Sprintf("platform auth %d: %s", e.Status, msg)
}

type signUpPayload struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

type passwordGrantPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthClient talks to the hosted auth REST API.
type AuthClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewAuthClient configures a resty client against the platform base URL.
func NewAuthClient(cfg config.PlatformConfig, logger *zap.Logger) *AuthClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.AnonKey != "" {
		client.SetHeader("apikey", cfg.AnonKey)
	}
	return &AuthClient{http: client, logger: logger}
}

// SignUp registers a user. Profile attributes travel as user metadata.
func (c *AuthClient) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthUser, error) {
	payload := signUpPayload{
		Email:    req.Email,
		Password: req.Password,
		Data: map[string]string{
			"username":  req.Username,
			"unidade":   req.Unit,
			"equipe":    req.Team,
			"microarea": req.MicroArea,
		},
	}
	var user models.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn exchanges credentials for a session using the password grant.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var session models.Session
	path := "/auth/v1/token?grant_type=password"
	if err := c.do(ctx, http.MethodPost, path, "", passwordGrantPayload{Email: email, Password: password}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the session behind accessToken.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

// User returns the identity behind accessToken.
func (c *AuthClient) User(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *AuthClient) do(ctx context.Context, method, path, bearer string, body, result interface{}) error {
	apiErr := &APIError{}
	req := c.http.R().
		SetContext(ctx).
		SetError(apiErr)
	if bearer != "" {
		req.SetAuthToken(bearer)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.SetHeader(requestid.Header, id)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("platform auth call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("platform auth %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		c.logger.Warn("platform auth rejected request",
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Code),
		)
		return apiErr
	}
	return nil
}
