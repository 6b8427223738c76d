package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/secondchance/internal/api/dto"
	"github.com/martijn/secondchance/internal/api/util"
	"github.com/martijn/secondchance/internal/core/domain"
	"github.com/martijn/secondchance/internal/core/repository"
	"github.com/martijn/secondchance/internal/core/service"
)

const (
	totalCountHeader = "X-Total-Count"
	imageFormField   = "file"
)

type ItemHandler struct {
	items  *service.ItemService
	logger *slog.Logger
}

func NewItemHandler(items *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		items:  items,
		logger: logger,
	}
}

// ListItems handles GET /api/secondchance/items
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Param		query		query		string	false	"field|op|value filters, comma separated"
//	@Param		order		query		string	false	"field|asc or field|desc, comma separated"
//	@Param		page		query		int		false	"Page number"
//	@Param		per_page	query		int		false	"Page size; 0 returns every item"
//	@Success	200			{array}		dto.ItemResponse
//	@Failure	400			{object}	dto.ErrorResponse
//	@Router		/api/secondchance/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))

	listFilter, err := util.NewListFilter(c.Query("query"), c.Query("order"), page, perPage, repository.ItemFields)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	items, total, err := h.items.ListItems(c.Request.Context(), repository.ItemFilter{ListFilter: listFilter})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := make([]dto.ItemResponse, len(items))
	for i, item := range items {
		response[i] = toItemResponse(item)
	}

	c.Header(totalCountHeader, strconv.Itoa(total))
	c.JSON(http.StatusOK, response)
}

// CreateItem handles POST /api/secondchance/items
//
//	@Summary	Create an item
//	@Tags		items
//	@Accept		json,mpfd
//	@Produce	json
//	@Param		request	body		dto.CreateItemRequest	true	"Item fields"
//	@Param		file	formData	file					false	"Item image"
//	@Success	201		{object}	dto.ItemResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/api/secondchance/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var upload *service.ImageUpload
	if fileHeader, err := c.FormFile(imageFormField); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			writeError(c, h.logger, service.NewInternalError("failed to open upload", err))
			return
		}
		defer f.Close()

		upload = &service.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        f,
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		badRequest(c, "Invalid file upload")
		return
	}

	item, err := h.items.CreateItem(c.Request.Context(), service.CreateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Condition:   req.Condition,
		Description: req.Description,
		AgeDays:     req.AgeDays,
	}, upload)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

// GetItem handles GET /api/secondchance/items/:id
//
//	@Summary	Get an item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	dto.ItemResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/api/secondchance/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	item, err := h.items.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

// UpdateItem handles PUT /api/secondchance/items/:id
//
//	@Summary	Update an item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Item ID"
//	@Param		request	body		dto.UpdateItemRequest	true	"Fields to change"
//	@Success	200		{object}	dto.ItemResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/api/secondchance/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body")
		return
	}

	item, err := h.items.UpdateItem(c.Request.Context(), id, domain.ItemPatch{
		Name:        req.Name,
		Category:    req.Category,
		Condition:   req.Condition,
		Description: req.Description,
		AgeDays:     req.AgeDays,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

// DeleteItem handles DELETE /api/secondchance/items/:id
//
//	@Summary	Delete an item
//	@Tags		items
//	@Param		id	path	int	true	"Item ID"
//	@Success	204
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/api/secondchance/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.items.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// itemID parses the :id parameter. Ids that cannot name an item are
// reported as not found.
func (h *ItemHandler) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, h.logger, service.NewNotFoundError("Item not found"))
		return 0, false
	}
	return id, true
}

func toItemResponse(item *domain.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Condition:   item.Condition,
		Description: item.Description,
		AgeDays:     item.AgeDays,
		AgeYears:    item.AgeYears,
		Image:       item.Image,
		DateAdded:   item.DateAdded,
		UpdatedAt:   item.UpdatedAt,
	}
}
