package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"secadmin/internal/admin/model"
	"secadmin/internal/admin/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Logo files ride in the establishment record itself, as the legacy API
// did. 2 MiB keeps payloads sane for an inline image.
const maxLogoBytes = 2 << 20

// GetEstablishments handles GET /establishments
func (h *AdminHandler) GetEstablishments(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	list, err := h.Establishments.List(c.Request().Context())
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	for _, e := range list {
		if len(e.Logo) > 0 {
			e.LogoURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(e.Logo)
		}
	}
	return c.JSON(http.StatusOK, list)
}

// PostEstablishment handles POST /establishments (multipart form)
func (h *AdminHandler) PostEstablishment(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.EstablishmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid form"},
		})
	}
	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	logo, err := h.readLogo(c)
	if err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	est := &model.Establishment{
		ID:           uuid.NewString(),
		Name:         req.Name,
		StreetNumber: req.StreetNumber,
		StreetName:   req.StreetName,
		PostalCode:   req.PostalCode,
		City:         req.City,
		Phone:        req.Phone,
		Logo:         logo,
	}
	if err := h.Establishments.Create(c.Request().Context(), est); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, est)
}

// PutEstablishment handles PUT /establishments/:id
func (h *AdminHandler) PutEstablishment(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.EstablishmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid form"},
		})
	}
	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	logo, err := h.readLogo(c)
	if err != nil {
		code, body := validationError(err)
		return c.JSON(code, body)
	}

	est := &model.Establishment{
		ID:           c.Param("id"),
		Name:         req.Name,
		StreetNumber: req.StreetNumber,
		StreetName:   req.StreetName,
		PostalCode:   req.PostalCode,
		City:         req.City,
		Phone:        req.Phone,
		Logo:         logo, // nil keeps the stored image
	}
	if err := h.Establishments.Update(c.Request().Context(), est); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "not_found", Message: "Establishment not found"},
			})
		}
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, est)
}

// DeleteEstablishment handles DELETE /establishments/:id
func (h *AdminHandler) DeleteEstablishment(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Establishments.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "not_found", Message: "Establishment not found"},
			})
		}
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// GetUsers handles GET /users (directory listing for the matrix header)
func (h *AdminHandler) GetUsers(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	users, err := h.Directory.ListPrincipals(c.Request().Context())
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	out := make([]principal, 0, len(users))
	for i := range users {
		out = append(out, principal{ID: users[i].ID, DisplayLabel: users[i].DisplayLabel()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) readLogo(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("logo")
	if err != nil {
		// Absent file is fine; the logo is optional.
		return nil, nil
	}
	if fh.Size > maxLogoBytes {
		return nil, &model.ErrorDetail{Code: "bad_request", Message: "Logo exceeds 2 MiB"}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, &model.ErrorDetail{Code: "bad_request", Message: "Unreadable logo upload"}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxLogoBytes+1))
	if err != nil || len(data) > maxLogoBytes {
		return nil, &model.ErrorDetail{Code: "bad_request", Message: "Unreadable logo upload"}
	}
	return data, nil
}
