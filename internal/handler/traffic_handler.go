package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/usecase"
)

// TrafficHandler 渋滞データに関するHTTPハンドラー
type TrafficHandler struct {
	trafficUseCase usecase.TrafficUseCase
}

// NewTrafficHandler TrafficHandlerの新しいインスタンスを作成
func NewTrafficHandler(trafficUseCase usecase.TrafficUseCase) *TrafficHandler {
	return &TrafficHandler{
		trafficUseCase: trafficUseCase,
	}
}

// GetTraffic GET /api/traffic - 現在の渋滞スナップショットを取得
func (h *TrafficHandler) GetTraffic(c *gin.Context) {
	snapshot, err := h.trafficUseCase.GetSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get traffic data: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// PostPing POST /api/traffic/ping - GPS pingの受信
func (h *TrafficHandler) PostPing(c *gin.Context) {
	var req model.PingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	buffered, err := h.trafficUseCase.IngestPing(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "lat and lng are required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"buffered": buffered,
	})
}

// GetArea GET /api/traffic/areas/:id - 渋滞エリアの詳細を取得
func (h *TrafficHandler) GetArea(c *gin.Context) {
	area, err := h.trafficUseCase.GetArea(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Traffic area not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get traffic area: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, area)
}

// CreateArea POST /api/traffic/areas - 渋滞エリアの作成
func (h *TrafficHandler) CreateArea(c *gin.Context) {
	var area model.TrafficArea
	if err := c.ShouldBindJSON(&area); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.trafficUseCase.CreateArea(c.Request.Context(), &area); err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create traffic area: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, area)
}

// UpdateArea PUT /api/traffic/areas/:id - 渋滞エリアの更新
func (h *TrafficHandler) UpdateArea(c *gin.Context) {
	var area model.TrafficArea
	if err := c.ShouldBindJSON(&area); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	area.ID = c.Param("id")

	if err := h.trafficUseCase.UpdateArea(c.Request.Context(), &area); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": err.Error(),
			})
		case errors.Is(err, model.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Traffic area not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to update traffic area: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, area)
}

// DeleteArea DELETE /api/traffic/areas/:id - 渋滞エリアの削除
func (h *TrafficHandler) DeleteArea(c *gin.Context) {
	if err := h.trafficUseCase.DeleteArea(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Traffic area not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to delete traffic area: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// BulkUpdate PUT /api/traffic/bulk - 複数エリアの一括更新
func (h *TrafficHandler) BulkUpdate(c *gin.Context) {
	var req struct {
		Areas []model.TrafficArea `json:"areas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if len(req.Areas) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "areas must not be empty",
		})
		return
	}

	areas, err := h.trafficUseCase.BulkUpdate(c.Request.Context(), req.Areas)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to bulk update traffic areas: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"areas": areas,
	})
}
