package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/THuebbe/pantrypro/internal/auth"
	"github.com/THuebbe/pantrypro/internal/db"
	"github.com/THuebbe/pantrypro/internal/inventory"
	"github.com/THuebbe/pantrypro/internal/menu"
	"github.com/THuebbe/pantrypro/internal/metrics"
	"github.com/THuebbe/pantrypro/internal/middleware"
	"github.com/THuebbe/pantrypro/internal/pos"
	"github.com/THuebbe/pantrypro/internal/posimport"
	"github.com/THuebbe/pantrypro/internal/recipe"
	"github.com/THuebbe/pantrypro/internal/reports"
	"github.com/THuebbe/pantrypro/internal/restaurant"
	"github.com/THuebbe/pantrypro/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── REPOS ─────────────────────────
	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)
	metricsRepo := metrics.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	restaurantService := restaurant.NewService(restaurantRepo)
	inventoryService := inventory.NewService(inventoryRepo)

	recipeService := recipe.NewService(
		recipeRepo,
		inventoryRepo, // stock reader
		menuRepo,      // menu-item ownership checks
		inventoryRepo, // ingredient library
	)

	menuService := menu.NewService(menuRepo, recipeService)

	posRegistry := pos.NewRegistry()
	importService := posimport.NewService(menuRepo, restaurantService, posRegistry)

	metricsService := metrics.NewService(metricsRepo)

	reportService := reports.NewService(
		inventoryRepo,
		menuRepo,
		recipeService,
		r2Client,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	restaurantHandler := restaurant.NewHandler(restaurantService)
	inventoryHandler := inventory.NewHandler(inventoryService, restaurantService)
	menuHandler := menu.NewHandler(menuService, restaurantService)
	recipeHandler := recipe.NewHandler(recipeService, restaurantService)
	importHandler := posimport.NewHandler(importService, restaurantService, restaurantService)
	metricsHandler := metrics.NewHandler(metricsService, restaurantService)
	reportHandler := reports.NewHandler(reportService, restaurantService)

	// ───────────────────────── PROTECTED API ─────────────────────────
	api := r.Group("/api")
	api.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("OWNER"),
	)

	// Restaurants
	restaurants := api.Group("/restaurants")
	{
		restaurants.POST("", restaurantHandler.CreateRestaurant)
		restaurants.GET("/me", restaurantHandler.GetMyRestaurant)
	}

	// Ingredient library + stock
	api.GET("/ingredients", inventoryHandler.ListIngredients)
	api.POST("/ingredients", inventoryHandler.CreateIngredient)

	inventoryGroup := api.Group("/inventory")
	{
		inventoryGroup.GET("", inventoryHandler.ListInventory)
		inventoryGroup.POST("", inventoryHandler.UpsertStock)
		inventoryGroup.PUT("", inventoryHandler.UpsertStock)
		inventoryGroup.GET("/low-stock", inventoryHandler.ListLowStock)
	}

	// Menu items
	menuItems := api.Group("/menu-items")
	{
		menuItems.GET("", menuHandler.ListItems)
		menuItems.GET("/categories", menuHandler.ListCategories)
		menuItems.GET("/:id", menuHandler.GetItem)
		menuItems.POST("", menuHandler.CreateItem)
		menuItems.PUT("/:id", menuHandler.UpdateItem)
		menuItems.DELETE("/:id", menuHandler.DeleteItem)
	}

	// Recipes. Line mutations live under /recipe-ingredients because gin
	// cannot mix :menuItemId with a literal segment at the same position.
	recipes := api.Group("/recipes")
	{
		recipes.GET("/:menuItemId", recipeHandler.GetRecipe)
		recipes.POST("/:menuItemId", recipeHandler.SaveRecipe)
		recipes.POST("/:menuItemId/ingredients", recipeHandler.AddIngredient)
		recipes.GET("/:menuItemId/cost", recipeHandler.GetRecipeCost)
		recipes.GET("/:menuItemId/validate", recipeHandler.ValidateRecipe)
		recipes.POST("/:menuItemId/calculate-deductions", recipeHandler.CalculateDeductions)
	}

	recipeLines := api.Group("/recipe-ingredients")
	{
		recipeLines.PUT("/:recipeIngredientId", recipeHandler.UpdateIngredient)
		recipeLines.DELETE("/:recipeIngredientId", recipeHandler.RemoveIngredient)
	}

	// POS sync
	posGroup := api.Group("/pos")
	{
		posGroup.POST("/credentials", importHandler.SaveCredentials)
		posGroup.GET("/verify", importHandler.Verify)
		posGroup.GET("/preview", importHandler.Preview)
		posGroup.POST("/import", importHandler.Import)
		posGroup.GET("/square/locations", importHandler.SquareLocations)
	}

	// Metrics
	metricsGroup := api.Group("/metrics")
	{
		metricsGroup.GET("/dashboard", metricsHandler.Dashboard)
		metricsGroup.GET("/inventory", metricsHandler.Inventory)
		metricsGroup.GET("/orders", metricsHandler.Orders)
		metricsGroup.GET("/receiving", metricsHandler.Receiving)
		metricsGroup.GET("/menu-items", metricsHandler.MenuItems)
		metricsGroup.GET("/waste", metricsHandler.Waste)
	}

	// Reports
	api.GET("/reports/export", reportHandler.Export)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
