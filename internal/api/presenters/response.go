package presenters

import (
	"Billfold-Backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	response := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		response["data"] = data
	}
	return c.Status(code).JSON(response)
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"message": message,
	}
	// Error detail is hidden in production so internals never leak.
	if err != nil && utils.GetConfig("IS_PROD") != "true" {
		response["error"] = err.Error()
	}
	return c.Status(code).JSON(response)
}
