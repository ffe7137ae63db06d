package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/core"
	"github.com/example/bazaar/internal/handlers"
	"github.com/example/bazaar/internal/middleware"
	"github.com/example/bazaar/internal/services"
	"github.com/example/bazaar/internal/store"
)

// Register wires up all HTTP routes. The engine's services are constructed
// once here and passed to handlers by reference; nothing is process-global.
func Register(app *fiber.App, st *store.Store, cfg *config.Config) *core.Notifier {
	creds := core.NewCredentialStore(st, nil)
	mailbox := core.NewMailbox(st)
	sessions := core.NewSessionManager(creds, mailbox, st)
	cart := core.NewCartStore()
	ledger := core.NewOrderLedger(cart, st)
	wishlist := core.NewWishlist(st)
	notifier := core.NewNotifier()
	catalog := services.NewCatalogService(cfg.CatalogFeedURL)

	authHandler := handlers.NewAuthHandler(creds, sessions, notifier, cfg)
	cartHandler := handlers.NewCartHandler(cart)
	orderHandler := handlers.NewOrderHandler(ledger)
	mailboxHandler := handlers.NewMailboxHandler(mailbox)
	catalogHandler := handlers.NewCatalogHandler(catalog)
	wishlistHandler := handlers.NewWishlistHandler(wishlist, cart)
	notificationHandler := handlers.NewNotificationHandler(notifier)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/otp/request", authHandler.RequestOtp)
	auth.Post("/otp/verify", authHandler.VerifyOtp)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session", authHandler.Session)
	auth.Post("/password/reset", authHandler.ResetPassword)

	// Product feed (read-only external collaborator)
	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	// Cart
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.GetCart)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.SetQuantity)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)
	cartGroup.Delete("/", cartHandler.ClearCart)

	// Wishlist
	wl := api.Group("/wishlist")
	wl.Get("/", wishlistHandler.List)
	wl.Post("/", wishlistHandler.Add)
	wl.Delete("/:id", wishlistHandler.Remove)
	wl.Post("/:id/move-to-cart", wishlistHandler.MoveToCart)

	// Mock SMS inbox
	mb := api.Group("/mailbox")
	mb.Get("/:phone", mailboxHandler.Read)
	mb.Delete("/:phone", mailboxHandler.Clear)

	// Notifications
	api.Get("/notifications", notificationHandler.List)
	api.Delete("/notifications/:id", notificationHandler.Dismiss)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg, sessions))

	protected.Post("/orders", orderHandler.PlaceOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	return notifier
}
