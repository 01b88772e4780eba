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

type fakeOptionSrv struct {
	catalog   *dto.OptionCatalog
	result    *dto.RenameOptionResult
	err       error
	renamed   [3]string
	retried   [3]string
	deleted   [2]string
	lastActor *models.JWTClaims
}

func (f *fakeOptionSrv) List(_ context.Context, actor *models.JWTClaims) (*dto.OptionCatalog, error) {
	f.lastActor = actor
	return f.catalog, f.err
}

func (f *fakeOptionSrv) Add(_ context.Context, actor *models.JWTClaims, req dto.AddOptionRequest) (*models.ConfigOption, error) {
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConfigOption{ID: "o1", Type: req.Type, Label: req.Label}, nil
}

func (f *fakeOptionSrv) Rename(_ context.Context, actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error) {
	f.lastActor = actor
	f.renamed = [3]string{string(optionType), oldLabel, newLabel}
	return f.result, f.err
}

func (f *fakeOptionSrv) RetryCascade(_ context.Context, actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error) {
	f.lastActor = actor
	f.retried = [3]string{string(optionType), oldLabel, newLabel}
	return f.result, f.err
}

func (f *fakeOptionSrv) Delete(_ context.Context, actor *models.JWTClaims, optionType models.OptionType, label string) error {
	f.lastActor = actor
	f.deleted = [2]string{string(optionType), label}
	return f.err
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin", Privilege: models.RoleAdmin}
}

func TestOptionHandlerList(t *testing.T) {
	srv := &fakeOptionSrv{catalog: &dto.OptionCatalog{Supporters: []string{"ANA"}}}
	handler := NewOptionHandler(srv)
	c, rec := newTestContext(http.MethodGet, "/options", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, srv.lastActor)
	assert.Equal(t, []interface{}{"ANA"}, decodeEnvelope(t, rec).Data["apoiador"])
}

func TestOptionHandlerAdd(t *testing.T) {
	handler := NewOptionHandler(&fakeOptionSrv{})
	c, rec := newTestContext(http.MethodPost, "/options", adminClaims())
	c.Request.Body = ioNopCloser(`{"type":"apoiador","label":"ANA"}`)

	handler.Add(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ANA", decodeEnvelope(t, rec).Data["label"])
}

func TestOptionHandlerAddDuplicate(t *testing.T) {
	handler := NewOptionHandler(&fakeOptionSrv{err: appErrors.Clone(appErrors.ErrDuplicateLabel, "apoiador \"ANA\" already exists")})
	c, rec := newTestContext(http.MethodPost, "/options", adminClaims())
	c.Request.Body = ioNopCloser(`{"type":"apoiador","label":"ana"}`)

	handler.Add(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_LABEL", decodeEnvelope(t, rec).Error["code"])
}

func TestOptionHandlerRename(t *testing.T) {
	srv := &fakeOptionSrv{result: &dto.RenameOptionResult{Type: models.OptionTypeSupporter, OldLabel: "ANA", NewLabel: "ANA PAULA", OptionRenamed: true}}
	handler := NewOptionHandler(srv)
	c, rec := newTestContext(http.MethodPut, "/options/apoiador/ANA", adminClaims())
	c.Params = append(c.Params, ginParam("type", "apoiador"), ginParam("label", "ANA"))
	c.Request.Body = ioNopCloser(`{"label":"Ana Paula"}`)

	handler.Rename(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [3]string{"apoiador", "ANA", "Ana Paula"}, srv.renamed)
	assert.Equal(t, true, decodeEnvelope(t, rec).Data["option_renamed"])
}

func TestOptionHandlerRenameRetry(t *testing.T) {
	srv := &fakeOptionSrv{result: &dto.RenameOptionResult{Type: models.OptionTypeSupporter, OldLabel: "ANA", NewLabel: "ANA PAULA"}}
	handler := NewOptionHandler(srv)
	c, rec := newTestContext(http.MethodPut, "/options/apoiador/ANA", adminClaims())
	c.Params = append(c.Params, ginParam("type", "apoiador"), ginParam("label", "ANA"))
	c.Request.Body = ioNopCloser(`{"label":"ANA PAULA","retry":true}`)

	handler.Rename(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [3]string{"apoiador", "ANA", "ANA PAULA"}, srv.retried)
	assert.Equal(t, [3]string{}, srv.renamed)
}

func TestOptionHandlerRenamePartialCascade(t *testing.T) {
	report := dto.CascadeReport{Updated: []string{"p1"}, Failed: []dto.CascadeFailure{{PlanID: "p2", Error: "timeout"}}}
	srv := &fakeOptionSrv{
		result: &dto.RenameOptionResult{Cascade: report},
		err:    appErrors.WithDetails(appErrors.ErrPartialCascade, report),
	}
	handler := NewOptionHandler(srv)
	c, rec := newTestContext(http.MethodPut, "/options/apoiador/ANA", adminClaims())
	c.Params = append(c.Params, ginParam("type", "apoiador"), ginParam("label", "ANA"))
	c.Request.Body = ioNopCloser(`{"label":"BIA"}`)

	handler.Rename(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "PARTIAL_CASCADE_FAILURE", envelope.Error["code"])
	details, ok := envelope.Error["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"p1"}, details["updated"])
}

func TestOptionHandlerDeleteInUse(t *testing.T) {
	srv := &fakeOptionSrv{err: appErrors.ErrOptionInUse}
	handler := NewOptionHandler(srv)
	c, rec := newTestContext(http.MethodDelete, "/options/eixo/INOVA%C3%87%C3%83O", adminClaims())
	c.Params = append(c.Params, ginParam("type", "eixo"), ginParam("label", "INOVAÇÃO"))

	handler.Delete(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, [2]string{"eixo", "INOVAÇÃO"}, srv.deleted)
}
