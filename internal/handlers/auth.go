package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/core"
	"github.com/example/bazaar/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	creds    *core.CredentialStore
	sessions *core.SessionManager
	notifier *core.Notifier
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(creds *core.CredentialStore, sessions *core.SessionManager, notifier *core.Notifier, cfg *config.Config) *AuthHandler {
	return &AuthHandler{creds: creds, sessions: sessions, notifier: notifier, cfg: cfg}
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	account, err := h.creds.RegisterAccount(req.Name, req.Email, req.Phone, req.Password, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully! Please verify your email.",
		"data": fiber.Map{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
			"phone": account.Phone,
		},
	})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login authenticates with email or phone plus password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.LoginWithPassword(req.Identifier, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, session.UserID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in successfully!",
		"data":    session,
		"token":   token,
	})
}

type otpRequest struct {
	Phone string `json:"phone"`
}

// RequestOtp issues a one-time code to the phone's mock mailbox.
func (h *AuthHandler) RequestOtp(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	challenge, err := h.sessions.RequestOtp(req.Phone)
	if err != nil {
		return respondError(c, err)
	}

	masked := challenge.Phone[len(challenge.Phone)-4:]
	h.notifier.Add("OTP sent to +91-"+masked, "info", 5*time.Second)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent to +91-" + masked,
		"data": fiber.Map{
			"phone":        challenge.Phone,
			"retry_after":  int(h.sessions.ResendAvailableIn(challenge.Phone).Seconds()),
			"delivered_to": "mock_sms_" + challenge.Phone,
		},
	})
}

type verifyOtpRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyOtp completes an OTP login.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req verifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.VerifyOtp(req.Phone, req.Code)
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, session.UserID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in successfully with OTP!",
		"data":    session,
		"token":   token,
	})
}

// Logout clears the current session. Safe to call when anonymous.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

// Session returns the current session, if any.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, ok := h.sessions.Current()
	if !ok {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	return c.JSON(fiber.Map{"success": true, "data": session})
}

type resetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword overwrites an account's password after re-validating the
// registration rules.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.sessions.ResetPassword(req.Email, req.NewPassword, req.ConfirmPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successfully!",
	})
}
