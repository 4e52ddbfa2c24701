package router

import (
	"myBeautyMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/top", handler.GetTopProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)

	api.GET("/categories/:category/products", handler.GetCategoryProducts)
	api.GET("/product-types", handler.GetProductTypes)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	api.GET("/products/:id/recommendations", handler.Related)
	api.GET("/recommendations/cart", handler.Cart)
}

func SetRatingRoutes(api *echo.Group, handler *rest.RatingHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/ratings", handler.SubmitRating, authRequired)
	api.GET("/products/:id/ratings", handler.GetProductRatings)
}
