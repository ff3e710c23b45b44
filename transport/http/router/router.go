package router

import (
	"github.com/go-chi/chi/v5"

	"quickgig/internal/handlers/booking"
	"quickgig/internal/handlers/catalog"
	"quickgig/internal/handlers/slot"
	"quickgig/transport/http/middleware"
)

type DomainHandlers struct {
	Slot    slot.Handler
	Booking booking.Handler
	Catalog catalog.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

// SetupRoutes mounts the versioned API. Every route requires a valid bearer
// token; per-resource policy checks live in the services.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.Auth)

		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
