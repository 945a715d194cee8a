package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/domain"
	"github.com/histcollect/histcollect/internal/dto"
	"github.com/histcollect/histcollect/internal/middleware"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
	"github.com/histcollect/histcollect/internal/pkg/metrics"
	"github.com/histcollect/histcollect/internal/serializer"
)

// HDCAService defines the manager operations the HDCA handler needs
type HDCAService interface {
	GetAccessible(ctx context.Context, id int64, user *domain.User) (*domain.HDCA, error)
	GetOwned(ctx context.Context, id int64, user *domain.User) (*domain.HDCA, error)
	Delete(ctx context.Context, item *domain.HDCA) error
	Undelete(ctx context.Context, item *domain.HDCA) error
	Purge(ctx context.Context, item *domain.HDCA) error
	SetTags(ctx context.Context, item *domain.HDCA, user *domain.User, tags []string) error
	Annotate(ctx context.Context, item *domain.HDCA, user *domain.User, text string) error
}

// HDCAHandler serves history dataset collection associations
type HDCAHandler struct {
	service    HDCAService
	serializer *serializer.HDCASerializer
	ids        IDDecoder
	logger     *zap.Logger
}

// NewHDCAHandler creates a new HDCA handler
func NewHDCAHandler(service HDCAService, s *serializer.HDCASerializer, ids IDDecoder, logger *zap.Logger) *HDCAHandler {
	return &HDCAHandler{
		service:    service,
		serializer: s,
		ids:        ids,
		logger:     logger.Named("hdca"),
	}
}

// RegisterRoutes registers HDCA routes. The show route is named so url
// fields can be built from it.
func (h *HDCAHandler) RegisterRoutes(router fiber.Router, authMiddleware *middleware.AuthMiddleware) {
	contents := router.Group("/histories/:history_id/contents/:type/:id")

	contents.Get("", authMiddleware.OptionalAuth(), h.Show).Name(serializer.RouteHistoryContentTyped)
	contents.Delete("", authMiddleware.RequireJWT(), h.Delete)
	contents.Put("/undelete", authMiddleware.RequireJWT(), h.Undelete)
	contents.Put("/tags", authMiddleware.RequireJWT(), h.SetTags)
	contents.Put("/annotation", authMiddleware.RequireJWT(), h.SetAnnotation)
}

// Show handles GET /api/histories/:history_id/contents/:type/:id
func (h *HDCAHandler) Show(c *fiber.Ctx) error {
	var q dto.ShowQuery
	if err := dto.ParseQueryAndValidate(c, &q); err != nil {
		return dto.WriteError(c, err)
	}
	if q.View != "" && !h.serializer.HasView(q.View) {
		return handleError(c, h.logger, apperrors.BadRequest(fmt.Sprintf("unknown view: %s", q.View)).
			WithDetail("view", q.View))
	}

	user, _ := middleware.GetUser(c)
	item, err := h.load(c, func(ctx context.Context, id int64) (*domain.HDCA, error) {
		return h.service.GetAccessible(ctx, id, user)
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	keys := q.KeyList()
	for _, key := range keys {
		if !h.serializer.HasKey(item, key) {
			return handleError(c, h.logger, apperrors.BadRequest(fmt.Sprintf("unknown key: %s", key)).
				WithDetail("key", key))
		}
	}

	return h.respond(c, item, user, q.View, keys)
}

// Delete handles DELETE /api/histories/:history_id/contents/:type/:id[?purge=true]
func (h *HDCAHandler) Delete(c *fiber.Ctx) error {
	var q dto.DeleteQuery
	if err := dto.ParseQueryAndValidate(c, &q); err != nil {
		return dto.WriteError(c, err)
	}

	user, _ := middleware.GetUser(c)
	item, err := h.loadOwned(c, user)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx := c.UserContext()
	if err := h.service.Delete(ctx, item); err != nil {
		return handleError(c, h.logger, err)
	}
	if q.Purge {
		if err := h.service.Purge(ctx, item); err != nil {
			return handleError(c, h.logger, err)
		}
	}

	return h.respond(c, item, user, "", []string{"id", "deleted", "purged"})
}

// Undelete handles PUT /api/histories/:history_id/contents/:type/:id/undelete
func (h *HDCAHandler) Undelete(c *fiber.Ctx) error {
	user, _ := middleware.GetUser(c)
	item, err := h.loadOwned(c, user)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.Undelete(c.UserContext(), item); err != nil {
		return handleError(c, h.logger, err)
	}

	return h.respond(c, item, user, serializer.ViewSummary, nil)
}

// SetTags handles PUT /api/histories/:history_id/contents/:type/:id/tags
func (h *HDCAHandler) SetTags(c *fiber.Ctx) error {
	var req dto.SetTagsRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return dto.WriteError(c, err)
	}

	user, _ := middleware.GetUser(c)
	item, err := h.loadOwned(c, user)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.SetTags(c.UserContext(), item, user, req.Tags); err != nil {
		return handleError(c, h.logger, err)
	}

	return h.respond(c, item, user, "", []string{"id", "tags"})
}

// SetAnnotation handles PUT /api/histories/:history_id/contents/:type/:id/annotation
func (h *HDCAHandler) SetAnnotation(c *fiber.Ctx) error {
	var req dto.SetAnnotationRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return dto.WriteError(c, err)
	}

	user, _ := middleware.GetUser(c)
	item, err := h.loadOwned(c, user)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.Annotate(c.UserContext(), item, user, req.Annotation); err != nil {
		return handleError(c, h.logger, err)
	}

	return h.respond(c, item, user, "", []string{"id", "annotation"})
}

func (h *HDCAHandler) loadOwned(c *fiber.Ctx, user *domain.User) (*domain.HDCA, error) {
	return h.load(c, func(ctx context.Context, id int64) (*domain.HDCA, error) {
		return h.service.GetOwned(ctx, id, user)
	})
}

// load resolves the route parameters and fetches the item, checking that it
// belongs to the history named in the path
func (h *HDCAHandler) load(c *fiber.Ctx, get func(ctx context.Context, id int64) (*domain.HDCA, error)) (*domain.HDCA, error) {
	if contentType := c.Params("type"); contentType != domain.HDCAContentType {
		return nil, apperrors.NotFound(fmt.Sprintf("history content type %q", contentType))
	}

	historyID, err := decodeParam(c, h.ids, "history_id")
	if err != nil {
		return nil, err
	}
	id, err := decodeParam(c, h.ids, "id")
	if err != nil {
		return nil, err
	}

	item, err := get(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if item.HistoryID != historyID {
		return nil, apperrors.NotFound("dataset collection")
	}
	return item, nil
}

func (h *HDCAHandler) respond(c *fiber.Ctx, item *domain.HDCA, user *domain.User, view string, keys []string) error {
	sc := &serializer.Context{User: user, URLs: RouteURLs{ctx: c}}

	doc, err := h.serializer.SerializeRequested(item, view, keys, sc)
	metrics.RecordSerialization(h.serializer.Name(), view, err)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(doc)
}

// RouteURLs builds paths from the application's named routes
type RouteURLs struct {
	ctx *fiber.Ctx
}

// URLFor implements serializer.URLBuilder
func (u RouteURLs) URLFor(route string, params map[string]string) (string, error) {
	if u.ctx.App().GetRoute(route).Name == "" {
		return "", apperrors.Configuration(fmt.Sprintf("no route named %q", route))
	}

	m := make(fiber.Map, len(params))
	for k, v := range params {
		m[k] = v
	}
	return u.ctx.GetRouteURL(route, m)
}
