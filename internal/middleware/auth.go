package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"quickai-backend/internal/config"
	"quickai-backend/internal/models"
	"quickai-backend/internal/quota"
)

// Context keys set for every authenticated request.
const (
	UserIDKey    = "user_id"
	PlanKey      = "plan"
	FreeUsageKey = "free_usage"
)

// AuthMiddleware validates the Supabase bearer token (HS256, signed with
// the project JWT secret), then resolves the caller's plan and free-tier
// usage from the ledger and attaches all three to the request context so
// handlers never talk to the identity provider themselves.
func AuthMiddleware(cfg *config.Config, ledger quota.UsageLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.Fail("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.Fail("invalid authorization header format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, models.Fail("empty token"))
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			message := "invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				message = "token has expired"
			}
			c.JSON(http.StatusUnauthorized, models.Fail(message))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Fail("invalid token claims"))
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.JSON(http.StatusUnauthorized, models.Fail("missing user id in token"))
			c.Abort()
			return
		}

		state, err := ledger.Get(c.Request.Context(), sub)
		if err != nil {
			// Domain failure, not a transport one: answered in-band like
			// every other handler error.
			c.JSON(http.StatusOK, models.Fail("failed to resolve user plan"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, sub)
		c.Set(PlanKey, state.Plan)
		c.Set(FreeUsageKey, state.FreeUsage)
		c.Next()
	}
}

// Identity pulls the authenticated caller out of the request context.
func Identity(c *gin.Context) (string, quota.UsageState, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", quota.UsageState{}, false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", quota.UsageState{}, false
	}
	state := quota.UsageState{
		Plan:      c.GetString(PlanKey),
		FreeUsage: c.GetInt(FreeUsageKey),
	}
	return id, state, true
}
