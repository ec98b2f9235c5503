package config

import (
	"Billfold-Backend/internal/api/handlers"
	"Billfold-Backend/internal/api/routes"
	"Billfold-Backend/internal/middleware"
	"Billfold-Backend/internal/utils"
	"Billfold-Backend/internal/utils/mailing"
	"Billfold-Backend/internal/utils/sms"
	"Billfold-Backend/internal/utils/storage"
	"Billfold-Backend/pkg/bill"
	"Billfold-Backend/pkg/chat"
	"Billfold-Backend/pkg/contact"
	"Billfold-Backend/pkg/jwt"
	"Billfold-Backend/pkg/user"
	"Billfold-Backend/pkg/warranty"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// external clients, constructed once and injected
	s3 := storage.NewAwsS3()
	mailer, err := mailing.NewMailer()
	if err != nil {
		log.Fatalf("error configuring mailer: %v", err)
	}
	smsSender := sms.NewTwilioSender()

	// Repository
	userRepository := user.NewUserRepository(db)
	billRepository := bill.NewBillRepository(db)
	contactRepository := contact.NewContactRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	billService := bill.NewBillService(billRepository, s3)
	warrantyService := warranty.NewWarrantyService(billRepository)
	contactService := contact.NewContactService(contactRepository, mailer, smsSender)
	chatService := chat.NewChatService()

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	billHandler := handlers.NewBillHandler(billService, validator)
	warrantyHandler := handlers.NewWarrantyHandler(warrantyService, validator)
	contactHandler := handlers.NewContactHandler(contactService, validator)
	chatHandler := handlers.NewChatHandler(chatService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		BillHandler:     billHandler,
		WarrantyHandler: warrantyHandler,
		ContactHandler:  contactHandler,
		ChatHandler:     chatHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
