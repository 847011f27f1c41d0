package middlewares

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/brainworksstudio2-dev/brain-works/auth"
	"github.com/brainworksstudio2-dev/brain-works/database"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "

	sessionKey = "session"
)

// Claims is our custom JWT payload: subject=principal id plus the identity
// attributes the role resolver consumes on every request.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

var (
	secretOnce sync.Once
	jwtSecret  []byte
	secretErr  error
)

func loadJWTSecret() error {
	secretOnce.Do(func() {
		// Prefer JWT_SECRET_KEY, fallback to JWT_SECRET
		sec := os.Getenv("JWT_SECRET_KEY")
		if strings.TrimSpace(sec) == "" {
			sec = os.Getenv("JWT_SECRET")
		}
		if strings.TrimSpace(sec) == "" {
			secretErr = errors.New("JWT secret not configured (set JWT_SECRET_KEY or JWT_SECRET)")
			return
		}
		jwtSecret = []byte(sec)
	})
	return secretErr
}

// IsAuthenticatedHeader validates a Bearer token, enforces HS256, runs the
// role resolver for the token's principal and stows the resulting session in
// c.Locals. The stored role is authoritative: it is re-read on every request
// rather than trusted from the token.
func IsAuthenticatedHeader() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := loadJWTSecret(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "server auth not configured",
			})
		}

		h := c.Get(authHeader)
		if h == "" || !strings.HasPrefix(strings.ToLower(h), strings.ToLower(bearerPrefix)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing/invalid Authorization header"})
		}
		raw := strings.TrimSpace(h[len(bearerPrefix):])
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid bearer token"})
		}

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		var claims Claims
		token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			// Parser already restricts to HS256; this is just defense-in-depth.
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		if strings.TrimSpace(claims.Subject) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token missing subject"})
		}

		resolver := auth.NewResolver(auth.NewGormProfileStore(database.DB))
		profile, err := resolver.Resolve(c.UserContext(), auth.Identity{
			PrincipalID: claims.Subject,
			Email:       claims.Email,
			DisplayName: claims.Name,
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "could not resolve principal"})
		}

		session := auth.NewSession()
		session.SignIn(profile)
		c.Locals(sessionKey, session)

		return c.Next()
	}
}

// RequireAdmin gates admin-only routes. A client session gets a denial with
// a redirect hint to its own area, never an error page.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFrom(c)
		if session == nil || session.State() != auth.Authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
		}
		if !session.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message":  "admin access required",
				"redirect": session.Destination(),
			})
		}
		return c.Next()
	}
}

// SessionFrom returns the request-scoped session, or nil on public routes.
func SessionFrom(c *fiber.Ctx) *auth.Session {
	if v := c.Locals(sessionKey); v != nil {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

// GenerateJWT signs a new HS256 token for the given profile, expiring in 24h.
func GenerateJWT(user *models.User) (string, error) {
	if err := loadJWTSecret(); err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		Name:  user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			// (Optional) set Issuer/Audience here if you want stricter validation
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}
