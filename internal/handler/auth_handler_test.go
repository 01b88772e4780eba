package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/middleware"
	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type fakeAuthSrv struct {
	user       *models.AuthUser
	login      *dto.LoginResponse
	err        error
	lastToken  string
	lastSignIn models.SignInRequest
}

func (f *fakeAuthSrv) Register(_ context.Context, req models.SignUpRequest) (*models.AuthUser, error) {
	return f.user, f.err
}

func (f *fakeAuthSrv) Login(_ context.Context, req models.SignInRequest) (*dto.LoginResponse, error) {
	f.lastSignIn = req
	return f.login, f.err
}

func (f *fakeAuthSrv) Logout(_ context.Context, actor *models.JWTClaims, token string) error {
	f.lastToken = token
	if actor == nil {
		return appErrors.ErrStaleSession
	}
	return f.err
}

func (f *fakeAuthSrv) Session(actor *models.JWTClaims) *dto.SessionInfo {
	if actor == nil {
		return nil
	}
	return &dto.SessionInfo{UserID: actor.UserID, Role: actor.Privilege}
}

func TestAuthHandlerLogin(t *testing.T) {
	srv := &fakeAuthSrv{login: &dto.LoginResponse{AccessToken: "access"}}
	handler := NewAuthHandler(srv)
	c, rec := newTestContext(http.MethodPost, "/auth/login", nil)
	c.Request.Body = ioNopCloser(`{"email":"ana@ubs.org","password":"secret"}`)

	handler.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@ubs.org", srv.lastSignIn.Email)
	assert.Equal(t, "access", decodeEnvelope(t, rec).Data["access_token"])
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{err: appErrors.ErrInvalidCredentials})
	c, rec := newTestContext(http.MethodPost, "/auth/login", nil)
	c.Request.Body = ioNopCloser(`{"email":"ana@ubs.org","password":"bad"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerRegister(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{user: &models.AuthUser{ID: "u1", Email: "ana@ubs.org"}})
	c, rec := newTestContext(http.MethodPost, "/auth/register", nil)
	c.Request.Body = ioNopCloser(`{"email":"ana@ubs.org","password":"secret1","username":"ana"}`)

	handler.Register(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", decodeEnvelope(t, rec).Data["id"])
}

func TestAuthHandlerLogoutForwardsToken(t *testing.T) {
	srv := &fakeAuthSrv{}
	handler := NewAuthHandler(srv)
	c, rec := newTestContext(http.MethodPost, "/auth/logout", &models.JWTClaims{UserID: "u1"})
	c.Set(middleware.ContextTokenKey, "access")

	handler.Logout(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "access", srv.lastToken)
}

func TestAuthHandlerSessionWithoutUser(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{})
	c, rec := newTestContext(http.MethodGet, "/auth/session", nil)

	handler.Session(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":null}`, rec.Body.String())
}
