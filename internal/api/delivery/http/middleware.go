package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-trading-journal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "user_id"
	contextKeyEmail  = "email"
)

// Claims are the token claims issued by the external auth provider.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RequestContextMiddleware puts the request ID on the request context so service logs carry it.
// It must run after the RequestID middleware.
func RequestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logger.WithContext(req.Context(), logger.StringField("request_id", id))))
			}
			return next(c)
		}
	}
}

// AuthMiddleware verifies HS256 bearer tokens and stores the subject and email on the context.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization header required"})
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid authorization header; expected Bearer token"})
			}

			var claims Claims
			token, err := jwt.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid user ID in token"})
			}

			c.Set(contextKeyUserID, userID)
			c.Set(contextKeyEmail, claims.Email)
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), logger.Field("user_id", userID))))
			return next(c)
		}
	}
}

// AdminMiddleware lets only the operator account through. It must run after AuthMiddleware.
func AdminMiddleware(adminEmail string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(contextKeyEmail).(string)
			if adminEmail == "" || !strings.EqualFold(email, adminEmail) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Admin access required"})
			}
			return next(c)
		}
	}
}

var errNoUser = errors.New("no authenticated user")

func currentUser(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(contextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, errNoUser
	}
	return id, nil
}
