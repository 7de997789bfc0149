package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "recipe_service/docs"
	"recipe_service/internal/logger"
	"recipe_service/internal/metrics"
	"recipe_service/internal/service"
)

// Handler wires HTTP layer to services, logging and metrics.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a new HTTP handler. log and m may be nil.
func NewHandler(services *service.Service, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{services: services, log: log, metrics: m}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.log != nil {
		router.Use(h.requestLogger)
	}
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	router.POST("/login", h.login)
	h.registerRecipeRoutes(router)
	router.GET("/events", h.userIdMiddleware, h.getEvents)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerRecipeRoutes(r *gin.Engine) {
	recipes := r.Group("/recipes")
	{
		recipes.GET("", h.listRecipes)
		recipes.GET("/:id", h.getRecipe)

		recipes.POST("", h.userIdMiddleware, h.createRecipe)
		recipes.PATCH("/:id", h.userIdMiddleware, h.updateRecipe)
		recipes.DELETE("/:id", h.userIdMiddleware, h.deleteRecipe)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
