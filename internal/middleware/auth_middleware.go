package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"shopmate/pkg/response"
	"shopmate/pkg/utils"
)

// AuthMiddleware gates a route group behind bearer auth. A missing token is
// 401; a token that is present but unparseable or expired is 403.
func AuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, response.Error(
					"UNAUTHORIZED", "Access denied. No token provided.", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
				return c.JSON(http.StatusUnauthorized, response.Error(
					"UNAUTHORIZED", "Access denied. No token provided.", nil,
				))
			}

			tokenString := tokenParts[1]

			claims, err := utils.ParseJWT(tokenString, jwtSecret)
			if err != nil {
				return c.JSON(http.StatusForbidden, response.Error(
					"FORBIDDEN", "Invalid or expired token.", nil,
				))
			}

			c.Set("user_id", claims.UserID)
			c.Set("phone", claims.Phone)
			c.Set("email", claims.Email)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}
