package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	sims := svcs.Simulations

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	g := app.Group("/")
	g.Get("variants", func(c *fiber.Ctx) error {
		return c.JSON(domain.Variants())
	})
	g.Get("defaults/:variant", func(c *fiber.Ctx) error {
		v, err := domain.ParseVariant(c.Params("variant"))
		if err != nil {
			return writeError(c, err)
		}
		in, err := sims.Defaults(v)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(in)
	})
	g.Post("simulations/:variant", func(c *fiber.Ctx) error {
		v, err := domain.ParseVariant(c.Params("variant"))
		if err != nil {
			return writeError(c, err)
		}
		// fields missing from the body keep their defaults
		in, err := sims.Defaults(v)
		if err != nil {
			return writeError(c, err)
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body: " + err.Error()})
			}
		}
		run, err := sims.Run(c.UserContext(), v, in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(run)
	})
}

func writeError(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make(fiber.Map, len(verrs))
		for _, e := range verrs {
			fields[e.Field] = e.Reason
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "fields": fields})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownVariant):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrDivisionByZero), errors.Is(err, domain.ErrNonFinite):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
