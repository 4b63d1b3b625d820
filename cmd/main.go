package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/pizzeria-dao/docs" // Import generated docs
	"github.com/franciscosanchezn/pizzeria-dao/internal/common"
	"github.com/franciscosanchezn/pizzeria-dao/internal/config"
	"github.com/franciscosanchezn/pizzeria-dao/internal/controllers"
	"github.com/franciscosanchezn/pizzeria-dao/internal/database"
	"github.com/franciscosanchezn/pizzeria-dao/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-dao/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title Pizzeria API
// @version 1.0
// @description Pizza menu backed by a relational PIZZA table
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	loadDotenvFile()
	setUpLogger()

	configuration := loadConfig()

	db := setupDatabase(configuration)
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	pizzaStore := store.NewPizzaStore(db, configuration.BatchSize)
	seedIfEmpty(context.Background(), pizzaStore, configuration)

	router := setupRouter(configuration, pizzaStore)

	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	checkPanicErr(router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter. The level follows
// APP_ENV unless LOG_LEVEL names a valid level, and is applied to the package
// loggers as well now that .env has been loaded.
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	level := common.ApplyLogLevel()
	log.WithField("level", level.String()).Debug("Logger configured")
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects to the configured database and makes sure the PIZZA table exists
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.DatabaseConfig())
	checkPanicErr(err)
	checkPanicErr(database.EnsureSchema(db))
	return db
}

// seedIfEmpty imports the built-in menu when the table has no rows
func seedIfEmpty(ctx context.Context, pizzaStore store.PizzaStore, conf *config.Config) {
	if !conf.SeedOnEmpty {
		return
	}

	pizzas, err := pizzaStore.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Could not check whether the menu is empty")
		return
	}
	if len(pizzas) > 0 {
		log.WithField("count", len(pizzas)).Info("Database already seeded with initial data")
		return
	}

	log.Info("Database is empty, seeding the built-in menu")
	result, err := pizzaStore.BulkInsert(ctx, store.CatalogSource{})
	if err != nil {
		log.WithError(err).WithField("inserted", result.Inserted).Error("Seeding stopped on a rejected batch")
		return
	}
	log.WithField("inserted", result.Inserted).Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter(conf *config.Config, pizzaStore store.PizzaStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log.StandardLogger()))

	setupRoutes(router, conf, controllers.NewPizzaController(pizzaStore))
	return router
}

// testTokenHandler issues an admin token. Only mounted in development.
func testTokenHandler(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := middleware.GenerateToken(jwtSecret, "test-user-123", "admin", 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      tokenString,
			"type":       "Bearer",
			"expires_in": 86400,
		})
	}
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, conf *config.Config, pizzaController controllers.PizzaController) {
	jwtSecret := []byte(conf.JWTSecret)

	router.GET("/health", healthCheckHandler)

	if conf.IsDevelopment() {
		router.GET("/test-token", testTokenHandler(jwtSecret))
	}

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/pizzas", pizzaController.GetAllPizzas)
			publicApi.GET("/pizzas/:code", pizzaController.GetPizzaByCode)
			publicApi.GET("/menu/by-category", pizzaController.GetMenuByCategory)
			publicApi.GET("/menu/most-expensive", pizzaController.GetMostExpensive)
		}

		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth(jwtSecret))
		{
			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/pizzas", pizzaController.CreatePizza)
				adminApi.PUT("/pizzas/:code", pizzaController.UpdatePizza)
				adminApi.DELETE("/pizzas/:code", pizzaController.DeletePizza)
				adminApi.POST("/imports", pizzaController.ImportPizzas)
			}
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzeria-dao",
	})
}
