package estate

import (
	"log/slog"

	"testament/internal/estate/handler"
	"testament/internal/estate/query"
	"testament/internal/estate/service"
	"testament/internal/estate/store"
	"testament/internal/platform/metrics"
)

// Service exposes the write operations over the estate collections.
type Service = service.Service

// Query exposes the read-only lookup surface.
type Query = query.Service

// Handler wires HTTP endpoints to the estate services.
type Handler = handler.Handler

// NewService constructs the will service with required dependencies.
func NewService(st store.Store, opts ...service.Option) *Service {
	return service.New(st, opts...)
}

// NewQuery constructs the query service.
func NewQuery(st store.Store) *Query {
	return query.New(st)
}

// NewHandler constructs an HTTP handler for the estate routes.
func NewHandler(s *Service, q *Query, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return handler.New(s, q, logger, m)
}
