package rest

import (
	"context"
	"errors"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RatingService interface {
	SubmitRating(ctx context.Context, event *domain.RatingEvent) error
	GetProductRatings(ctx context.Context, productID string, limit int) ([]domain.RatingEvent, error)
}

type RatingHandler struct {
	ratingService RatingService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewRatingHandler(ratingService RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type SubmitRatingRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Rating    float64 `json:"rating" validate:"min=0,max=5"`
}

// SubmitRating records one rating event for the authenticated user.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	var req SubmitRatingRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate rating request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// Get user_id from context (set by auth middleware)
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := &domain.RatingEvent{
		ProductID: req.ProductID,
		UserID:    strconv.FormatUint(uint64(userID), 10),
		Rating:    req.Rating,
	}

	if err := h.ratingService.SubmitRating(ctx, event); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to submit rating", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(event))
}

// GET /api/v1/products/:id/ratings?n=20
func (h *RatingHandler) GetProductRatings(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "product id is required"})
	}

	n, _ := strconv.Atoi(c.QueryParam("n"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.ratingService.GetProductRatings(ctx, productID, n)
	if err != nil {
		logger.Error("Failed to load product ratings", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
