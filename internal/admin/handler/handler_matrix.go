package handler

import (
	"net/http"

	"secadmin/internal/admin/matrix"
	"secadmin/internal/admin/model"

	"github.com/labstack/echo/v4"
)

type principal struct {
	ID           string `json:"id"`
	DisplayLabel string `json:"display_label"`
}

type matrixResponse struct {
	Users []principal  `json:"users"`
	Pages []model.Page `json:"pages"`
	Rows  []matrix.Row `json:"rows"`
}

// commitFailureResponse carries the pre-edit record alongside the error
// so the client can revert the cell instead of keeping the rejected edit.
type commitFailureResponse struct {
	Error   model.ErrorDetail `json:"error"`
	Current model.Permission  `json:"current"`
}

// ensureLoaded lazily builds the grid on first touch; reload forces a
// rebuild. A failed load keeps whatever grid was published before.
func (h *AdminHandler) ensureLoaded(c echo.Context, reload bool) error {
	if h.Engine.Loaded() && !reload {
		return nil
	}
	return h.Engine.Load(c.Request().Context())
}

// GetMatrix handles GET /matrix
func (h *AdminHandler) GetMatrix(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	reload := c.QueryParam("reload") == "true"
	if err := h.ensureLoaded(c, reload); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	users, pages, rows := h.Engine.Snapshot()
	resp := matrixResponse{
		Users: make([]principal, 0, len(users)),
		Pages: pages,
		Rows:  rows,
	}
	for i := range users {
		resp.Users = append(resp.Users, principal{ID: users[i].ID, DisplayLabel: users[i].DisplayLabel()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetEffective handles GET /permissions/effective
func (h *AdminHandler) GetEffective(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.GetEffectiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid parameters"},
		})
	}
	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	if err := h.ensureLoaded(c, false); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, h.Engine.Effective(req.UserID, req.PagePath))
}

// PostAccess handles POST /permissions/access (master gate edit)
func (h *AdminHandler) PostAccess(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.SetAccessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}
	if err := h.requireKnownPage(req.PagePath); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	if err := h.ensureLoaded(c, false); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	candidate := h.Engine.SetAccess(req.UserID, req.PagePath, req.Access)
	candidate.UpdatedBy = callerID

	if err := h.Engine.Commit(c.Request().Context(), candidate); err != nil {
		return h.commitFailure(c, err, req.UserID, req.PagePath)
	}
	return c.JSON(http.StatusOK, candidate)
}

// PostCapability handles POST /permissions/capability (single CRUD flag)
func (h *AdminHandler) PostCapability(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.SetCapabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}
	if err := h.requireKnownPage(req.PagePath); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	if err := h.ensureLoaded(c, false); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	candidate, err := h.Engine.SetCapability(req.UserID, req.PagePath, model.Capability(req.Capability), req.Value)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	candidate.UpdatedBy = callerID

	if err := h.Engine.Commit(c.Request().Context(), candidate); err != nil {
		return h.commitFailure(c, err, req.UserID, req.PagePath)
	}
	return c.JSON(http.StatusOK, candidate)
}

func (h *AdminHandler) commitFailure(c echo.Context, err error, userID, pagePath string) error {
	code, body := httpError(err)
	envelope, ok := body.(model.ErrorResponse)
	if !ok {
		return c.JSON(code, body)
	}
	return c.JSON(code, commitFailureResponse{
		Error:   envelope.Error,
		Current: h.Engine.Effective(userID, pagePath),
	})
}

func (h *AdminHandler) requireKnownPage(path string) error {
	if h.Engine.KnownPage(path) {
		return nil
	}
	return &model.ErrorDetail{Code: "bad_request", Message: "unknown page path"}
}
