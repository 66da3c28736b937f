package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"secadmin/internal/admin/model"
	"secadmin/internal/admin/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPostAccess(t *testing.T) {
	t.Run("grant access on an unconfigured cell persists a caps-free record", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, _ := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		dir.On("ListPrincipals", mock.Anything).Return([]model.User{{ID: "u1"}}, nil)
		permRepo.On("ListAll", mock.Anything).Return([]*model.Permission{}, nil)
		permRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.Permission) bool {
			return p.UserID == "u1" && p.PagePath == "/rapport-securite" &&
				p.Access && !p.Create && !p.Read && !p.Update && !p.Delete &&
				p.UpdatedBy == "admin_1"
		})).Return(nil)

		body := model.SetAccessReq{UserID: "u1", PagePath: "/rapport-securite", Access: true}
		rec := PerformRequest(e, http.MethodPost, "/api/v1/permissions/access", body,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusOK, rec.Code)

		var got model.Permission
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Access)
		assert.False(t, got.HasAnyCapability())
		permRepo.AssertExpectations(t)
	})

	t.Run("revoke access cascades all capabilities off", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, _ := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		dir.On("ListPrincipals", mock.Anything).Return([]model.User{{ID: "u1"}}, nil)
		permRepo.On("ListAll", mock.Anything).Return([]*model.Permission{
			{UserID: "u1", PagePath: "/rapport-securite", Access: true, Create: true, Read: true},
		}, nil)
		permRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.Permission) bool {
			return !p.Access && !p.Create && !p.Read && !p.Update && !p.Delete
		})).Return(nil)

		body := model.SetAccessReq{UserID: "u1", PagePath: "/rapport-securite", Access: false}
		rec := PerformRequest(e, http.MethodPost, "/api/v1/permissions/access", body,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusOK, rec.Code)
		permRepo.AssertExpectations(t)
	})

	t.Run("store failure returns 502 and the pre-edit record", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, engine := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		dir.On("ListPrincipals", mock.Anything).Return([]model.User{{ID: "u1"}}, nil)
		permRepo.On("ListAll", mock.Anything).Return([]*model.Permission{}, nil)
		permRepo.On("Upsert", mock.Anything, mock.Anything).Return(repository.ErrWriteRejected)

		body := model.SetAccessReq{UserID: "u1", PagePath: "/rapport-securite", Access: true}
		rec := PerformRequest(e, http.MethodPost, "/api/v1/permissions/access", body,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var resp struct {
			Error   model.ErrorDetail `json:"error"`
			Current model.Permission  `json:"current"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "store_unavailable", resp.Error.Code)
		assert.False(t, resp.Current.Access, "client must revert to the pre-edit value")

		// The grid kept the pre-edit state too.
		assert.False(t, engine.Effective("u1", "/rapport-securite").Access)
	})

	t.Run("unknown page path returns 400", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, _ := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		body := model.SetAccessReq{UserID: "u1", PagePath: "/not-a-page", Access: true}
		rec := PerformRequest(e, http.MethodPost, "/api/v1/permissions/access", body,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing user_id returns 400", func(t *testing.T) {
		e, _ := NewTestStack(t, new(MockDirectorySource), new(MockPermissionRepository), new(MockEstablishmentRepository))

		body := model.SetAccessReq{PagePath: "/rapport-securite", Access: true}
		rec := PerformRequest(e, http.MethodPost, "/api/v1/permissions/access", body,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
