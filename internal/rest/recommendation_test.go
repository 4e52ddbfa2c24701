package rest

import (
	"context"
	"encoding/json"
	"myBeautyMarket/domain"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecommendationService struct {
	recs        []domain.Recommendation
	suggestions domain.CartSuggestions

	gotProductID string
	gotK         int
	gotCartIDs   []string
}

func (s *stubRecommendationService) GetRecommendations(_ context.Context, productID string, k int) []domain.Recommendation {
	s.gotProductID = productID
	s.gotK = k
	return s.recs
}

func (s *stubRecommendationService) CartRecommendations(_ context.Context, productIDs []string) domain.CartSuggestions {
	s.gotCartIDs = productIDs
	return s.suggestions
}

func TestRelatedHandler(t *testing.T) {
	stub := &stubRecommendationService{
		recs: []domain.Recommendation{{ProductID: "B002", CombinedScore: 0.4}},
	}
	h := NewRecommendationHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products/B001/recommendations?n=6", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/:id/recommendations")
	c.SetParamNames("id")
	c.SetParamValues("B001")

	require.NoError(t, h.Related(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "B001", stub.gotProductID)
	assert.Equal(t, 6, stub.gotK)

	assert.True(t, json.Valid(rec.Body.Bytes()))
	assert.Contains(t, rec.Body.String(), "B002")
}

func TestRelatedHandler_DefaultsN(t *testing.T) {
	stub := &stubRecommendationService{}
	h := NewRecommendationHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products/B001/recommendations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/:id/recommendations")
	c.SetParamNames("id")
	c.SetParamValues("B001")

	require.NoError(t, h.Related(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, stub.gotK)
}

func TestRelatedHandler_EmptyListIsStillOK(t *testing.T) {
	stub := &stubRecommendationService{recs: []domain.Recommendation{}}
	h := NewRecommendationHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products/nope/recommendations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/:id/recommendations")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.Related(c))

	// a degraded list is a normal answer, not an error
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartHandler(t *testing.T) {
	stub := &stubRecommendationService{
		suggestions: domain.CartSuggestions{
			CrossSell: []domain.CrossSellItem{{ProductID: "B005"}},
			UpSell:    []domain.UpSellItem{},
		},
	}
	h := NewRecommendationHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendations/cart?product_ids=B001,%20B002,,", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Cart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"B001", "B002"}, stub.gotCartIDs, "ids are trimmed and blanks dropped")
}

func TestCartHandler_MissingIDsIsBadRequest(t *testing.T) {
	h := NewRecommendationHandler(&stubRecommendationService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendations/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Cart(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
