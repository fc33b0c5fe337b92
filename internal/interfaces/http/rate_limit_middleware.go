package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
)

// Limiter contrato mínimo del limitador de tasa (implementado en Redis).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware limita peticiones por IP usando una ventana fija
// compartida en Redis. Si limiter es nil el middleware es un no-op; si Redis
// falla se deja pasar la petición y se registra el error.
func RateLimitMiddleware(limiter Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		allowed, err := limiter.Allow(c.Context(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.IP()).Msg("rate limiter no disponible, permitiendo petición")
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Error: "demasiadas peticiones, intente más tarde"})
		}
		return c.Next()
	}
}
