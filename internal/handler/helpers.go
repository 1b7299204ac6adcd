package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gvclassroom/classroom-api/internal/service"
)

func actorFromContext(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(string); ok {
			actor.ID = strings.TrimSpace(id)
		}
	}
	if v := c.Locals("user_role"); v != nil {
		if tipo, ok := v.(string); ok {
			actor.Tipo = strings.TrimSpace(tipo)
		}
	}
	return actor
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
