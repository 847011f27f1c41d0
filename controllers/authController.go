package controllers

import (
	"crypto/subtle"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brainworksstudio2-dev/brain-works/auth"
	"github.com/brainworksstudio2-dev/brain-works/database"
	"github.com/brainworksstudio2-dev/brain-works/middlewares"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

type registerDTO struct {
	DisplayName     string `json:"display_name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type loginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func profileStore() *auth.GormProfileStore {
	return auth.NewGormProfileStore(database.DB)
}

// Register creates a client account. The default sign-up path can only ever
// produce role=client; admin accounts go through RegisterAdmin.
func Register(c *fiber.Ctx) error {
	return register(c, models.RoleClient)
}

// RegisterAdmin creates an administrator account. It is gated by the
// ADMIN_REGISTRATION_CODE environment secret so the path is explicit and
// never reachable from the public sign-up flow.
func RegisterAdmin(c *fiber.Ctx) error {
	code := os.Getenv("ADMIN_REGISTRATION_CODE")
	if code == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin registration disabled"})
	}
	supplied := strings.TrimSpace(c.Get("X-Admin-Registration-Code"))
	if subtle.ConstantTimeCompare([]byte(code), []byte(supplied)) != 1 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "invalid registration code"})
	}
	return register(c, models.RoleAdmin)
}

func register(c *fiber.Ctx, role models.Role) error {
	var dto registerDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	if dto.Password != dto.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "passwords do not match"})
	}

	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if _, err := profileStore().FindByEmail(c.UserContext(), dto.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email already exists"})
	}

	user := models.User{
		Email:       dto.Email,
		DisplayName: dto.DisplayName,
		Role:        role,
	}
	user.SetPassword(dto.Password)

	created, err := profileStore().CreateIfAbsent(c.UserContext(), &user)
	if err != nil {
		return err
	}
	if !created {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "account already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.DisplayName,
			"email": user.Email,
			"role":  user.Role,
		},
		"redirect": auth.DestinationFor(user.Role),
	})
}

// Login verifies credentials, resolves the principal to a role and returns a
// bearer token plus the post-authentication destination for that role.
func Login(c *fiber.Ctx) error {
	var dto loginDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid email format"})
	}

	user, err := profileStore().FindByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid credentials"})
	}
	if err := user.ComparePassword(dto.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid credentials"})
	}

	// Run the resolver on the sign-in event so the returned role always
	// comes from the profile store, not from the credential row we happened
	// to load.
	resolver := auth.NewResolver(profileStore())
	profile, err := resolver.Resolve(c.UserContext(), auth.Identity{
		PrincipalID: user.Id,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		return err
	}

	session := auth.NewSession()
	session.SignIn(profile)

	token, err := middlewares.GenerateJWT(profile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not issue token"})
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"redirect": session.Destination(),
		"user": fiber.Map{
			"id":    profile.Id,
			"name":  profile.DisplayName,
			"email": profile.Email,
			"role":  profile.Role,
		},
	})
}

// Logout signs the session out. Tokens are stateless, so this clears the
// legacy cookie and lets the client drop its bearer token.
func Logout(c *fiber.Ctx) error {
	if session := middlewares.SessionFrom(c); session != nil {
		session.SignOut()
	}
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// Me returns the resolved session for the current request.
func Me(c *fiber.Ctx) error {
	session := middlewares.SessionFrom(c)
	if session == nil || session.Profile() == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
	}
	profile := session.Profile()
	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    profile.Id,
			"name":  profile.DisplayName,
			"email": profile.Email,
			"role":  profile.Role,
		},
		"redirect": session.Destination(),
	})
}
