package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tanush-em/QWERTY/internal/service"
	"github.com/tanush-em/QWERTY/pkg/response"
)

type readModelService interface {
	List(ctx context.Context, name string, limit, skip int64) (*service.ListResult, error)
	Get(ctx context.Context, name, id string) (bson.M, error)
	Collections(ctx context.Context) ([]service.CollectionInfo, error)
}

// CollectionHandler serves the generic collection read endpoints.
type CollectionHandler struct {
	service readModelService
}

// NewCollectionHandler constructs the handler.
func NewCollectionHandler(service readModelService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// List godoc
// @Summary List one collection as a paginated, populated page
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection name"
// @Param limit query int false "Page size (default 100)"
// @Param skip query int false "Documents to skip (default 0)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /data/{collection} [get]
func (h *CollectionHandler) List(c *gin.Context) {
	name := strings.TrimSpace(c.Param("collection"))

	// Absent or non-numeric values fall through as zero; the service
	// substitutes the default page size.
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	skip, _ := strconv.ParseInt(c.Query("skip"), 10, 64)

	page, err := h.service.List(c.Request.Context(), name, limit, skip)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page.Records, page.Count, page.Limit, page.Skip)
}

// Get godoc
// @Summary Fetch a single formatted record by id
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path string true "Record id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /{collection}/{id} [get]
func (h *CollectionHandler) Get(c *gin.Context) {
	name := strings.TrimSpace(c.Param("collection"))
	id := strings.TrimSpace(c.Param("id"))

	doc, err := h.service.Get(c.Request.Context(), name, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Collections godoc
// @Summary Enumerate the collections the store currently holds
// @Tags Collections
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /collections [get]
func (h *CollectionHandler) Collections(c *gin.Context) {
	infos, err := h.service.Collections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "collections": infos})
}
