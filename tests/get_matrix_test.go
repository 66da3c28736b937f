package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"secadmin/internal/admin/directory"
	"secadmin/internal/admin/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetMatrix(t *testing.T) {
	t.Run("full cross-product with synthesized defaults and return 200", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, _ := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		dir.On("ListPrincipals", mock.Anything).Return([]model.User{
			{ID: "u1", Email: "a@example.com", FirstName: "Alice", LastName: "Martin"},
			{ID: "u2", Email: "b@example.com"},
		}, nil)
		permRepo.On("ListAll", mock.Anything).Return([]*model.Permission{
			{UserID: "u1", PagePath: "/rapport-securite", Access: true, Read: true},
		}, nil)

		rec := PerformRequest(e, http.MethodGet, "/api/v1/matrix", nil,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Users []struct {
				ID           string `json:"id"`
				DisplayLabel string `json:"display_label"`
			} `json:"users"`
			Pages []model.Page `json:"pages"`
			Rows  []struct {
				Page  model.Page         `json:"page"`
				Cells []model.Permission `json:"cells"`
			} `json:"rows"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Len(t, resp.Users, 2)
		assert.Equal(t, "Alice Martin", resp.Users[0].DisplayLabel)
		assert.Equal(t, "b@example.com", resp.Users[1].DisplayLabel)
		assert.Len(t, resp.Rows, len(resp.Pages))

		for _, row := range resp.Rows {
			assert.Len(t, row.Cells, 2)
			for _, cell := range row.Cells {
				if cell.UserID == "u1" && cell.PagePath == "/rapport-securite" {
					assert.True(t, cell.Access)
					assert.True(t, cell.Read)
				} else {
					assert.False(t, cell.Access)
					assert.False(t, cell.HasAnyCapability())
				}
			}
		}
	})

	t.Run("directory failure returns 503 without partial grid", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, engine := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		dir.On("ListPrincipals", mock.Anything).Return(nil, directory.ErrUnavailable)
		permRepo.On("ListAll", mock.Anything).Return([]*model.Permission{}, nil)

		rec := PerformRequest(e, http.MethodGet, "/api/v1/matrix", nil,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "load_failed")
		assert.False(t, engine.Loaded())
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		e, _ := NewTestStack(t, new(MockDirectorySource), new(MockPermissionRepository), new(MockEstablishmentRepository))

		rec := PerformRequest(e, http.MethodGet, "/api/v1/matrix", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		e, _ := NewTestStack(t, new(MockDirectorySource), new(MockPermissionRepository), new(MockEstablishmentRepository))

		rec := PerformRequest(e, http.MethodGet, "/api/v1/matrix", nil,
			map[string]string{"Authorization": "Bearer not.a.token"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetEffective(t *testing.T) {
	t.Run("missing record returns the all-false default", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, _ := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		dir.On("ListPrincipals", mock.Anything).Return([]model.User{{ID: "u1"}}, nil)
		permRepo.On("ListAll", mock.Anything).Return([]*model.Permission{}, nil)

		rec := PerformRequest(e, http.MethodGet,
			"/api/v1/permissions/effective?user_id=u1&page_path=/rapport-securite", nil,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusOK, rec.Code)

		var perm model.Permission
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perm))
		assert.Equal(t, "u1", perm.UserID)
		assert.False(t, perm.Access)
		assert.False(t, perm.HasAnyCapability())
	})

	t.Run("missing query params return 400", func(t *testing.T) {
		dir := new(MockDirectorySource)
		permRepo := new(MockPermissionRepository)
		e, _ := NewTestStack(t, dir, permRepo, new(MockEstablishmentRepository))

		rec := PerformRequest(e, http.MethodGet, "/api/v1/permissions/effective?user_id=u1", nil,
			map[string]string{"Authorization": SignToken(t, "admin_1")})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
