package handler

import (
	"net/http"

	"secadmin/internal/admin/directory"
	"secadmin/internal/admin/matrix"
	"secadmin/internal/admin/repository"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	Engine         *matrix.Engine
	Establishments repository.EstablishmentRepository
	Directory      directory.Source
}

func NewAdminHandler(engine *matrix.Engine, establishments repository.EstablishmentRepository, dir directory.Source) *AdminHandler {
	return &AdminHandler{Engine: engine, Establishments: establishments, Directory: dir}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
