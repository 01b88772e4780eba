package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type fakeProfileSrv struct {
	profile *models.Profile
	err     error
	lastReq dto.ChangeRoleRequest
}

func (f *fakeProfileSrv) Me(_ context.Context, actor *models.JWTClaims) (*models.Profile, error) {
	if actor == nil {
		return nil, nil
	}
	return f.profile, f.err
}

func (f *fakeProfileSrv) ChangeRole(_ context.Context, actor *models.JWTClaims, req dto.ChangeRoleRequest) (*dto.ChangeRoleResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ChangeRoleResponse{Role: models.RoleAdmin}, nil
}

func TestProfileHandlerMe(t *testing.T) {
	handler := NewProfileHandler(&fakeProfileSrv{profile: &models.Profile{ID: "u1", Username: "ana", Role: models.RoleNormal}})
	c, rec := newTestContext(http.MethodGet, "/profile", &models.JWTClaims{UserID: "u1"})

	handler.Me(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", decodeEnvelope(t, rec).Data["username"])
}

func TestProfileHandlerMeWithoutSession(t *testing.T) {
	handler := NewProfileHandler(&fakeProfileSrv{})
	c, rec := newTestContext(http.MethodGet, "/profile", nil)

	handler.Me(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":null}`, rec.Body.String())
}

func TestProfileHandlerChangeRole(t *testing.T) {
	srv := &fakeProfileSrv{}
	handler := NewProfileHandler(srv)
	c, rec := newTestContext(http.MethodPut, "/profile/role", &models.JWTClaims{UserID: "u1"})
	c.Request.Body = ioNopCloser(`{"code":"admin-code"}`)

	handler.ChangeRole(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-code", srv.lastReq.Code)
	assert.Equal(t, "Administrador", decodeEnvelope(t, rec).Data["role"])
}

func TestProfileHandlerChangeRoleRejected(t *testing.T) {
	handler := NewProfileHandler(&fakeProfileSrv{err: appErrors.Clone(appErrors.ErrForbidden, "invalid role code")})
	c, rec := newTestContext(http.MethodPut, "/profile/role", &models.JWTClaims{UserID: "u1"})
	c.Request.Body = ioNopCloser(`{"code":"guess"}`)

	handler.ChangeRole(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
