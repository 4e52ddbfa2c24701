package rest

import (
	"context"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/metrics"
	"net/http"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	// RecommendationService never fails: faults degrade to shorter lists.
	RecommendationService interface {
		GetRecommendations(ctx context.Context, productID string, k int) []domain.Recommendation
		CartRecommendations(ctx context.Context, productIDs []string) domain.CartSuggestions
	}

	RelatedQuery struct {
		N int `query:"n"`
	}

	CartQuery struct {
		ProductIDs string `query:"product_ids" validate:"required"`
	}
)

func NewRecommendationHandler(service RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		timeout:  10 * time.Second,
	}
}

// GET /api/v1/products/:id/recommendations?n=4
func (h *RecommendationHandler) Related(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "product id is required"})
	}

	var q RelatedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = 4
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recs := h.service.GetRecommendations(ctx, productID, q.N)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/cart?product_ids=B001,B002
func (h *RecommendationHandler) Cart(c echo.Context) error {
	var q CartQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(q.ProductIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "product_ids is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	suggestions := h.service.CartRecommendations(ctx, ids)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(suggestions))
}
