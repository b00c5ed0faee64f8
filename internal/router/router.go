package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // the Echo web framework handles routing

    "github.com/iliyamo/hotel-back-office/internal/handler"
    "github.com/iliyamo/hotel-back-office/internal/middleware"
    "github.com/iliyamo/hotel-back-office/internal/model"
)

// Handlers bundles every handler the router wires up.  main builds
// the set once and hands it over; the router decides which middleware
// guards which group.
type Handlers struct {
    Auth         *handler.AuthHandler
    Room         *handler.RoomHandler
    Rate         *handler.RateHandler
    Availability *handler.AvailabilityHandler
    Booking      *handler.BookingHandler
    Settlement   *handler.SettlementHandler
    Invoice      *handler.InvoiceHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Unauthenticated
// operations (register, login, refresh, logout) live under /v1/auth;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token; the old one is revoked.
    g.POST("/refresh", a.Refresh)
    // Logout accepts a refresh token in the body and invalidates it, so
    // it needs no JWT of its own.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
    auth.GET("/me", a.Me)
}

// RegisterAPI registers the back-office endpoints under /v1.  Every
// route requires a valid access token.  Room and rate management are
// ADMIN only; the booking desk (availability, bookings, settlement,
// invoices) is open to both roles.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string) {
    api := e.Group("/v1")
    api.Use(middleware.JWTAuth(jwtSecret))

    staff := middleware.RequireRole(model.RoleAdmin, model.RoleStaff)
    admin := middleware.RequireRole(model.RoleAdmin)

    // Room catalogue.  Reads are open to all staff; mutations are
    // reserved for admins.
    api.GET("/rooms", h.Room.List, staff)
    api.GET("/rooms/:id", h.Room.Get, staff)
    api.POST("/rooms", h.Room.Create, admin)
    api.PUT("/rooms/:id", h.Room.Update, admin)
    api.POST("/rooms/:id/maintenance", h.Room.SetMaintenance, admin)

    // Per-date pricing calendar.
    api.GET("/rooms/:id/rates", h.Rate.List, staff)
    api.PUT("/rooms/:id/rates", h.Rate.Set, admin)
    api.DELETE("/rooms/:id/rates", h.Rate.Delete, admin)

    // Availability probe used by the booking dialog.
    api.GET("/rooms/:id/availability", h.Availability.Check, staff)

    // Booking lifecycle.
    api.POST("/bookings", h.Booking.Create, staff)
    api.GET("/bookings", h.Booking.List, staff)
    api.GET("/bookings/:id", h.Booking.Get, staff)
    api.POST("/bookings/:id/check-in", h.Booking.CheckIn, staff)
    api.POST("/bookings/:id/check-out", h.Booking.CheckOut, staff)
    api.POST("/bookings/:id/cancel", h.Booking.Cancel, staff)
    api.POST("/bookings/:id/settle", h.Settlement.Settle, staff)

    // Invoice archive, written at settlement and read-only here.
    api.GET("/invoices", h.Invoice.List, staff)
    api.GET("/invoices/:id", h.Invoice.Get, staff)
}
