package router

import (
	"secadmin/internal/admin/handler"
	"secadmin/internal/admin/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handler.AdminHandler, authSecret string) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Health Check and metrics stay open; everything else needs a token.
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Register(nil)))

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)
	v1.Use(handler.AuthMiddleware(authSecret))

	// Permission matrix
	v1.GET("/matrix", h.GetMatrix)
	v1.GET("/permissions/effective", h.GetEffective)
	v1.POST("/permissions/access", h.PostAccess)
	v1.POST("/permissions/capability", h.PostCapability)

	// Directory
	v1.GET("/users", h.GetUsers)

	// Establishment referential
	v1.GET("/establishments", h.GetEstablishments)
	v1.POST("/establishments", h.PostEstablishment)
	v1.PUT("/establishments/:id", h.PutEstablishment)
	v1.DELETE("/establishments/:id", h.DeleteEstablishment)
}
