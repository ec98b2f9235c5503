package routes

import (
	"Billfold-Backend/internal/api/handlers"
	"Billfold-Backend/internal/middleware"
	"Billfold-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	BillHandler     handlers.BillHandler
	WarrantyHandler handlers.WarrantyHandler
	ContactHandler  handlers.ContactHandler
	ChatHandler     handlers.ChatHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Bills()
	c.Contact()
	c.Chatbot()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/google", c.UserHandler.GoogleLogin)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/profile", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Bills() {
	bills := c.App.Group("/api/v1/bills", c.Middleware.AuthMiddleware(c.JWTService))

	// Basic CRUD operations
	bills.Post("", c.BillHandler.CreateBill)
	bills.Get("", c.BillHandler.GetUserBills)
	bills.Get("/:id", c.BillHandler.GetBillDetails)
	bills.Patch("/:id", c.BillHandler.UpdateBill)
	bills.Delete("/:id", c.BillHandler.DeleteBill)

	// Warranty claim workflow
	bills.Post("/:id/service-centers", c.WarrantyHandler.FindServiceCenters)
}

func (c *Config) Contact() {
	c.App.Post("/api/v1/contact", c.ContactHandler.CreateContact)
}

func (c *Config) Chatbot() {
	c.App.Post("/api/v1/chatbot/query", c.Middleware.AuthMiddleware(c.JWTService), c.ChatHandler.Query)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
