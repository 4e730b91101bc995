// Package handler exposes the places lookup and photo proxy endpoints.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"placelookup_backend/internal/places/service"
	"placelookup_backend/internal/places/transport"
	"placelookup_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
)

// photoCacheAge is the cache lifetime for proxied photos. Place photos are
// immutable content addressed by an opaque reference, so they are safe to
// cache publicly for a day.
const photoCacheAge = 24 * time.Hour

// Handler exposes the places endpoints.
type Handler struct {
	svc *service.Service
}

// NewHandler creates the places HTTP handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Lookup handles POST /api/v1/places/lookup.
func (h *Handler) Lookup(c *gin.Context) {
	var req transport.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest,
			"body must contain a non-empty 'address' and an optional non-negative 'selectedIndex'",
			err.Error())
		return
	}

	result, err := h.svc.Lookup(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Photo handles GET /api/v1/places/photo. It accepts the parameter aliases
// the frontend has used over time; the first present alias wins.
func (h *Handler) Photo(c *gin.Context) {
	name := lo.CoalesceOrEmpty(c.Query("photoName"), c.Query("name"), c.Query("photoRef"))
	if name == "" {
		httpkit.Error(c, http.StatusBadRequest,
			"query parameter 'photoName' is required and must start with \"places/\"", nil)
		return
	}

	width := parsePixels(
		lo.CoalesceOrEmpty(c.Query("maxWidthPx"), c.Query("maxwidth")),
		service.DefaultMaxWidthPx,
	)
	height := parsePixels(
		lo.CoalesceOrEmpty(c.Query("maxHeightPx"), c.Query("maxheight")),
		0,
	)

	photo, err := h.svc.Photo(c.Request.Context(), name, width, height)
	if httpkit.HandleError(c, err) {
		return
	}

	cachecontrol.New(cachecontrol.Config{
		Public: true,
		MaxAge: cachecontrol.Duration(photoCacheAge),
	})(c)
	c.Data(http.StatusOK, photo.ContentType, photo.Bytes)
}

// parsePixels reads a pixel bound, falling back when absent or malformed.
func parsePixels(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
