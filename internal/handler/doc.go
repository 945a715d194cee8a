// Package handler contains the HTTP handlers of the collections API.
//
// Handlers parse and validate requests, decode the opaque ids in route
// parameters, call the managers in the service package and serialize the
// result with the serializer package.
//
// # Route Organization
//
//   - /api/histories/:history_id/contents/:type/:id - collection associations
//   - /health, /livez, /readyz, /version - probes
//   - /openapi.yaml, /openapi.json, /docs, /redoc - API documentation
//
// The show route is registered under the name history_content_typed;
// serializers build url fields from it.
//
// # Error Handling
//
// handleError maps apperrors codes to HTTP statuses. Server-side failures
// are logged, reported to Sentry and answered with a generic message.
package handler
