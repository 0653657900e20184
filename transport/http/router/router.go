package router

import (
	"github.com/go-chi/chi/v5"

	"stillhouse/internal/handlers/auth"
	"stillhouse/internal/handlers/event"
	"stillhouse/internal/handlers/inquiry"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Event   event.Handler
	Inquiry inquiry.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
