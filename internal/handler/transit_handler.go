package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"navify-backend/internal/usecase"
)

// TransitHandler 交通機関の到着予測に関するHTTPハンドラー
type TransitHandler struct {
	transitUseCase usecase.TransitUseCase
}

// NewTransitHandler TransitHandlerの新しいインスタンスを作成
func NewTransitHandler(transitUseCase usecase.TransitUseCase) *TransitHandler {
	return &TransitHandler{
		transitUseCase: transitUseCase,
	}
}

// GetTransit GET /api/transit?lat&lng - 近傍の到着予測を取得
func (h *TransitHandler) GetTransit(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "lat and lng query parameters are required",
		})
		return
	}

	resp, err := h.transitUseCase.GetArrivals(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get transit arrivals: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
