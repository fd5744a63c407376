package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/giovaniif/items-api/domain/item"
	"github.com/giovaniif/items-api/infra/metrics"
	"github.com/giovaniif/items-api/protocols"
	"github.com/giovaniif/items-api/use_cases/create"
	"github.com/giovaniif/items-api/use_cases/get"
	"github.com/giovaniif/items-api/use_cases/list"
	"github.com/giovaniif/items-api/use_cases/remove"
)

const (
	idempotencyKeyHeader     = "Idempotency-Key"
	idempotentReplayedHeader = "Idempotent-Replayed"
	msgNameRequired          = "Name is required"
	msgPriceRequired         = "Valid price is required"
	msgItemNotFound          = "Item not found"
	msgInvalidBody           = "Invalid request body"
	msgRequestInProgress     = "Request is already being processed"
	msgIdempotencyKeyReused  = "Idempotency-Key was already used with a different request"
	msgInternalServerError   = "Internal server error"
)

type CreateItemRequest struct {
	Name  any `json:"name"`
	Price any `json:"price"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type itemHandlers struct {
	listUseCase   *list.List
	createUseCase *create.Create
	getUseCase    *get.Get
	removeUseCase *remove.Remove
	log           *slog.Logger
}

func (h *itemHandlers) listItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.listUseCase.List(c.Request.Context()))
}

func (h *itemHandlers) createItem(c *gin.Context) {
	var createRequest CreateItemRequest
	// an empty body is treated as {} so it fails on the missing name
	if err := c.ShouldBindJSON(&createRequest); err != nil && !errors.Is(err, io.EOF) && !isAttributeTypeError(err) {
		h.log.WarnContext(c.Request.Context(), "invalid create body", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}

	out, err := h.createUseCase.Create(c.Request.Context(), create.Input{
		Name:           createRequest.Name,
		Price:          createRequest.Price,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if out.Replayed {
		c.Header(idempotentReplayedHeader, "true")
	} else {
		metrics.ItemsCreated.Inc()
	}
	c.JSON(http.StatusCreated, out.Item)
}

func (h *itemHandlers) getItem(c *gin.Context) {
	itemId, ok := h.parseItemId(c)
	if !ok {
		return
	}
	found, err := h.getUseCase.Get(c.Request.Context(), get.Input{ItemId: itemId})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *itemHandlers) deleteItem(c *gin.Context) {
	itemId, ok := h.parseItemId(c)
	if !ok {
		return
	}
	if err := h.removeUseCase.Remove(c.Request.Context(), remove.Input{ItemId: itemId}); err != nil {
		h.respondError(c, err)
		return
	}
	metrics.ItemsDeleted.Inc()
	c.Status(http.StatusNoContent)
}

// isAttributeTypeError reports a name or price the decoder could not hold, such as a number
// outside float64 range. The decoder leaves that field nil, so validation rejects it in order.
func isAttributeTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && (typeErr.Field == "name" || typeErr.Field == "price")
}

// parseItemId answers 404 itself for ids that are not base-10 integers, since no item can match them.
func (h *itemHandlers) parseItemId(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	itemId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.log.WarnContext(c.Request.Context(), "item not found", slog.String("id", raw))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgItemNotFound})
		return 0, false
	}
	return itemId, true
}

func (h *itemHandlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, item.ErrNameRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgNameRequired})
	case errors.Is(err, item.ErrPriceRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgPriceRequired})
	case errors.Is(err, item.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgItemNotFound})
	case errors.Is(err, protocols.ErrIdempotencyKeyInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: msgRequestInProgress})
	case errors.Is(err, protocols.ErrIdempotencyKeyReused):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msgIdempotencyKeyReused})
	default:
		h.log.ErrorContext(c.Request.Context(), "unhandled error", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalServerError})
	}
}
