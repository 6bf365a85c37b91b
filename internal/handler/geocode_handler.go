package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/usecase"
)

// GeocodeHandler ジオコーディングに関するHTTPハンドラー
type GeocodeHandler struct {
	routeUseCase usecase.RouteDirectionsUseCase
}

// NewGeocodeHandler GeocodeHandlerの新しいインスタンスを作成
func NewGeocodeHandler(routeUseCase usecase.RouteDirectionsUseCase) *GeocodeHandler {
	return &GeocodeHandler{
		routeUseCase: routeUseCase,
	}
}

// Geocode GET /api/geocode?address&country - 住所を座標に解決
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	address := c.Query("address")
	country := c.Query("country")

	loc, err := h.routeUseCase.Geocode(c.Request.Context(), address, country)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "missing_parameter",
				"message": "address query parameter is required",
			})
		case errors.Is(err, model.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to geocode address: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": loc.Address,
		"location": gin.H{
			"lat": loc.Lat,
			"lng": loc.Lng,
		},
	})
}
