package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// SessionController serves the cart, favorites and checkout of the current
// session.
type SessionController struct {
	sessions services.SessionService
	checkout services.CheckoutService
}

func NewSessionController(sessions services.SessionService, checkout services.CheckoutService) *SessionController {
	return &SessionController{sessions: sessions, checkout: checkout}
}

func (ctrl *SessionController) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	res, svcErr := ctrl.sessions.GetCart(c.Request.Context(), sid)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *SessionController) AddCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	res, svcErr := ctrl.sessions.AddToCart(c.Request.Context(), sid, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateCartItem sets the quantity of one line, or of every variant of the
// product with all_variants.
func (ctrl *SessionController) UpdateCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	res, svcErr := ctrl.sessions.UpdateCartItem(c.Request.Context(), sid, productID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RemoveCartItem deletes the line matching ?classification=, or every
// variant with ?all_variants=true.
func (ctrl *SessionController) RemoveCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}
	allVariants, _ := strconv.ParseBool(c.Query("all_variants"))
	res, svcErr := ctrl.sessions.RemoveCartItem(c.Request.Context(), sid, productID, c.Query("classification"), allVariants)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *SessionController) ClearCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	res, svcErr := ctrl.sessions.ClearCart(c.Request.Context(), sid)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *SessionController) GetFavorites(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	res, svcErr := ctrl.sessions.GetFavorites(c.Request.Context(), sid)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *SessionController) AddFavorite(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	res, svcErr := ctrl.sessions.AddFavorite(c.Request.Context(), sid, req.ProductID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *SessionController) IsFavorite(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}
	liked, svcErr := ctrl.sessions.IsFavorite(c.Request.Context(), sid, productID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": productID, "is_favorite": liked})
}

func (ctrl *SessionController) RemoveFavorite(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}
	res, svcErr := ctrl.sessions.RemoveFavorite(c.Request.Context(), sid, productID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Checkout places a cash-on-delivery order from the session cart.
func (ctrl *SessionController) Checkout(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	order, svcErr := ctrl.checkout.CreateOrder(c.Request.Context(), sid, &req, c.GetHeader(middleware.IdempotencyHeader))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// EndSession drops the session's cart and favorites.
func (ctrl *SessionController) EndSession(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	if svcErr := ctrl.sessions.EndSession(c.Request.Context(), sid); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}
