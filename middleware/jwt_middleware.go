package middleware

import (
	"mock-interview-backend/config"
	authutils "mock-interview-backend/lib/utils/auth-utils"
	apimodels "mock-interview-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}

// UserRequired пропускает только токены с заполненным sub
func UserRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetUserID(ctx) == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("в токене не указан пользователь"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
