package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainworksstudio2-dev/brain-works/controllers"
	"github.com/brainworksstudio2-dev/brain-works/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/register", controllers.Register)
	api.Post("/admin/register", controllers.RegisterAdmin)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Public booking submission (the client-facing form posts here)
	api.Post("/bookings", controllers.CreateBooking)

	// Protected endpoints (JWT auth; the role resolver runs per request)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	protected.Get("/me", controllers.Me)

	// Admin area: document issuance and booking management
	admin := protected.Group("")
	admin.Use(middlewares.RequireAdmin())

	// Idempotency guard so a double-submitted form never mints two documents
	admin.Use(middlewares.Idempotency())

	// Invoices
	admin.Post("/invoices", controllers.CreateInvoice)
	admin.Get("/invoices", controllers.GetInvoices)
	admin.Get("/invoices/:id", controllers.GetInvoice)

	// Receipts
	admin.Post("/receipts", controllers.CreateReceipt)
	admin.Get("/receipts", controllers.GetReceipts)
	admin.Get("/receipts/:id", controllers.GetReceipt)

	// Bookings
	admin.Get("/bookings", controllers.GetBookings)
	admin.Put("/bookings/:id/confirm", controllers.ConfirmBooking)
}
