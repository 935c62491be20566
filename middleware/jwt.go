package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thedarik/Quations/config"
	"github.com/Thedarik/Quations/database"
	"github.com/Thedarik/Quations/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateJWT generates a JWT token for the user. The jti claim makes every
// issued token unique even within the same second, so a fresh login always
// produces a token distinct from the one it replaces.
func GenerateJWT(userID uint, username string) (string, error) {
	expireMinutes := time.Duration(config.AppConfig.TokenExpireMinutes) * time.Minute
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"jti":      uuid.NewString(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(expireMinutes).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware checks for a valid JWT token in the request. A token must
// both verify cryptographically AND match the account's current session
// record: logging in again replaces the session row, so older tokens stop
// resolving here even before they expire.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	// Parse and validate the token (signature + exp claim)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	// JWT numeric claims decode as float64
	userID := uint(claims["userId"].(float64))

	// Single-active-session check
	var session models.Session
	err = database.Database.Db.Where("user_id = ? AND token = ?", userID, tokenString).First(&session).Error
	if err != nil || session.ExpiresAt.Before(time.Now()) {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	c.Locals("userId", userID)
	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}

	return c.Next()
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the token form field / query parameter the original clients send.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	if token := c.FormValue("token"); token != "" {
		return token
	}
	return c.Query("token")
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
