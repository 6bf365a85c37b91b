package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/usecase"
)

// TripsHandler トリップ記録に関するHTTPハンドラー
type TripsHandler struct {
	tripsUseCase usecase.TripsUseCase
}

// NewTripsHandler TripsHandlerの新しいインスタンスを作成
func NewTripsHandler(tripsUseCase usecase.TripsUseCase) *TripsHandler {
	return &TripsHandler{
		tripsUseCase: tripsUseCase,
	}
}

// RecordTrip POST /api/trips - トリップ記録の保存（匿名可）
func (h *TripsHandler) RecordTrip(c *gin.Context) {
	var trip model.TripLog
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	saved, err := h.tripsUseCase.RecordTrip(c.Request.Context(), c.GetHeader("X-User-ID"), &trip)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": err.Error(),
			})
		case errors.Is(err, model.ErrPersistenceError):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "unavailable",
				"message": "Trip log store is not configured",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to record trip: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// GetTrips GET /api/trips - 自分のトリップ記録一覧を取得
func (h *TripsHandler) GetTrips(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	trips, err := h.tripsUseCase.GetTrips(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_user",
				"message": "X-User-ID header is required",
			})
		case errors.Is(err, model.ErrPersistenceError):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "unavailable",
				"message": "Trip log store is not configured",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to get trips: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips})
}
