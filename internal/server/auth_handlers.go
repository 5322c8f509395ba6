package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName = "jwt"
	tokenIssuer       = "ripple-api"
	tokenAudience     = "ripple-client"

	// bcryptCost matches the cost the rest of the user base was hashed with.
	bcryptCost = 12
)

// Authenticate handles POST /api/authenticate
// @Summary Authenticate a user
// @Description Verify email/password credentials and issue a bearer token plus session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} object{status=string,token=string}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 401 {object} object{status=string,message=string}
// @Router /authenticate [post]
func (s *Server) Authenticate(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewMissingInputError("Please provide email and password"))
	}

	// Reject before any lookup when either field is absent.
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewMissingInputError("Please provide email and password"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewInvalidCredentialsError("Incorrect email or password"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c,
			models.NewInvalidCredentialsError("Incorrect email or password"))
	}

	return s.sendToken(c, user.ID, fiber.StatusOK)
}

// Logout handles GET /api/logout
// @Summary Log out
// @Description Overwrite the session cookie with a sentinel value; issued tokens stay valid until natural expiry
// @Tags auth
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /logout [get]
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "loggedout",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// Signup handles POST /api/signup
// @Summary Register a new user
// @Description Create a user account and issue a bearer token plus session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{full_name=string,email=string,password=string} true "Signup request"
// @Success 201 {object} object{status=string,token=string}
// @Failure 400 {object} object{status=string,message=string}
// @Router /signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewMissingInputError("Please provide your name, email and password"))
	}

	// Signup can be switched off entirely or rolled out gradually; partial
	// rollouts bucket by the requested email so retries land on the same side.
	if !s.flags.Enabled("signup", strings.ToLower(req.Email)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Signups are currently disabled",
		})
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewMissingInputError("Please provide your name, email and password"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashedPassword),
		Active:   true,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, createErr)
	}

	return s.sendToken(c, user.ID, fiber.StatusCreated)
}

// sendToken issues the signed token and the companion session cookie, then
// writes the success envelope.
func (s *Server) sendToken(c *fiber.Ctx, userID uint, status int) error {
	token, err := s.generateToken(userID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	cookieExpiry := time.Now().Add(
		time.Duration(s.config.JWTCookieExpiresDays) * 24 * time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  cookieExpiry,
		HTTPOnly: true,
	})

	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

// generateToken creates a signed JWT encoding the given user identity.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(s.config.JWTExpiresIn).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
