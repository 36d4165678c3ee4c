package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"reciclothes/internal/errors"
	"reciclothes/internal/service"
)

// ProductHandler serves the catalog.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

// ListProducts godoc
// @Summary List all products
// @Description Images are returned base64 encoded, or null when a product has none.
// @Tags products
// @Produce json
// @Success 200 {array} model.ProductView
// @Failure 500 {object} errors.Result
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "list products failed",
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, errors.Result{Message: errors.ServerErrorMessage})
	}
	return c.JSON(http.StatusOK, products)
}
