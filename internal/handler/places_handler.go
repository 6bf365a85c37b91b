package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/usecase"
)

// PlacesHandler 地名・スポット検索に関するHTTPハンドラー
type PlacesHandler struct {
	placesUseCase usecase.PlacesUseCase
}

// NewPlacesHandler PlacesHandlerの新しいインスタンスを作成
func NewPlacesHandler(placesUseCase usecase.PlacesUseCase) *PlacesHandler {
	return &PlacesHandler{
		placesUseCase: placesUseCase,
	}
}

// Search GET /api/places?q&country&limit - スポット検索
func (h *PlacesHandler) Search(c *gin.Context) {
	query := c.Query("q")
	country := c.Query("country")

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "limit must be an integer",
			})
			return
		}
		limit = parsed
	}

	places, err := h.placesUseCase.Search(c.Request.Context(), query, country, limit)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "missing_parameter",
				"message": "q query parameter is required",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to search places: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": places})
}
