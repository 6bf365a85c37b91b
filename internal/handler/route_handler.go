package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/usecase"
)

// addressNotFoundMessage 住所が解決できなかった場合のクライアント向けメッセージ
const addressNotFoundMessage = "Could not find origin/destination address. Try a more specific address or coordinates (lat,lng)."

// RouteHandler 経路検索と保存済み経路に関するHTTPハンドラー
type RouteHandler struct {
	routeUseCase usecase.RouteDirectionsUseCase
}

// NewRouteHandler RouteHandlerの新しいインスタンスを作成
func NewRouteHandler(routeUseCase usecase.RouteDirectionsUseCase) *RouteHandler {
	return &RouteHandler{
		routeUseCase: routeUseCase,
	}
}

// GetRoutes GET /api/routes?origin&dest&country - 経路検索
func (h *RouteHandler) GetRoutes(c *gin.Context) {
	origin := c.Query("origin")
	dest := c.Query("dest")
	country := c.Query("country")

	result, err := h.routeUseCase.GetDirections(c.Request.Context(), origin, dest, country)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "missing_parameter",
				"message": "origin and dest query parameters are required",
			})
		case errors.Is(err, model.ErrAddressNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "address_not_found",
				"message": addressNotFoundMessage,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to compute routes: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// SaveRoute POST /api/routes/saved - 経路の保存
func (h *RouteHandler) SaveRoute(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "missing_user",
			"message": "X-User-ID header is required",
		})
		return
	}

	var req model.SaveRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	route, err := h.routeUseCase.SaveRoute(c.Request.Context(), userID, &req)
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
			"message": "Failed to save route: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, route)
}

// GetSavedRoutes GET /api/routes/saved - 保存済み経路一覧の取得
func (h *RouteHandler) GetSavedRoutes(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "missing_user",
			"message": "X-User-ID header is required",
		})
		return
	}

	routes, err := h.routeUseCase.GetSavedRoutes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get saved routes: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// DeleteSavedRoute DELETE /api/routes/saved/:id - 保存済み経路の削除
func (h *RouteHandler) DeleteSavedRoute(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "missing_user",
			"message": "X-User-ID header is required",
		})
		return
	}

	if err := h.routeUseCase.DeleteSavedRoute(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Saved route not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to delete saved route: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
