package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/repository"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureShopIndexes(db); err != nil {
		log.Printf("shop index warning: %v", err)
	}
	if err := database.EnsureShoppingListIndexes(db); err != nil {
		log.Printf("shopping list index warning: %v", err)
	}

	settingsRepo := repository.NewDeliverySettingsRepository(db)
	shopRepo := repository.NewShopLocationRepository(db)
	listRepo := repository.NewShoppingListRepository(db)

	checkoutDeps := handlers.CheckoutDeps{
		Settings:      settingsRepo,
		Shops:         shopRepo,
		ShoppingLists: listRepo,
	}

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/campaign", handlers.GetCampaignProducts(db))
	r.GET("/categories", handlers.GetCategories(db))

	// Checkout works for guests too; the token is optional on these routes.
	r.POST("/checkout/quote", handlers.QuoteCheckout(db, checkoutDeps, config.AppEnv.JWTSecret))
	r.POST("/orders", handlers.CreateOrder(db, checkoutDeps, config.AppEnv.JWTSecret))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/orders", handlers.GetMyOrders(db))
		user.GET("/orders/:id", handlers.GetOrder(db))
		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/shops", handlers.GetShops(shopRepo))
		admin.POST("/shops", handlers.CreateShop(shopRepo))
		admin.PUT("/shops/:id", handlers.UpdateShop(shopRepo))
		admin.DELETE("/shops/:id", handlers.DeleteShop(shopRepo))

		admin.GET("/delivery-settings", handlers.GetDeliverySettings(settingsRepo))
		admin.PUT("/delivery-settings", handlers.SaveDeliverySettings(settingsRepo))

		admin.GET("/shopping-lists", handlers.GetShoppingLists(listRepo))
		admin.POST("/shopping-lists", handlers.CreateShoppingList(listRepo))
		admin.PATCH("/shopping-lists/:id/status", handlers.UpdateShoppingListStatus(listRepo))

		admin.POST("/replacements/preview", handlers.PreviewReplacement(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.POST("/orders/:id/replacements/approve", handlers.ApproveReplacement(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
