package models

import "time"

// UserAccount represents a registered customer credential record. Accounts are
// created at registration or auto-provisioned on first OTP login, mutated only
// by password reset, and never deleted.
type UserAccount struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PasswordEncoding string    `json:"password"`
	CreatedAt        time.Time `json:"created_at"`
	EmailVerified    bool      `json:"email_verified"`
	PhoneVerified    bool      `json:"phone_verified"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
}

// Session is the public view of the currently authenticated account. At most
// one session exists at a time; it lives under a fixed store key and is
// destroyed on logout.
type Session struct {
	UserID        string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Avatar        string    `json:"avatar"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	LoginAt       time.Time `json:"login_at"`
}

// OtpChallenge records the last one-time code issued for a phone number.
// A new request for the same phone overwrites the previous challenge.
type OtpChallenge struct {
	Phone    string    `json:"phone"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}
