package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"sync"
	"time"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/store"
)

// sessionKey holds the single persisted session.
const sessionKey = "bazaar_session"

// otpResendCooldown is how long a caller is asked to wait before re-sending
// an OTP. Advisory only: a new request supersedes the old challenge at any
// time.
const otpResendCooldown = 30 * time.Second

// guestName is the display name given to accounts auto-provisioned on first
// OTP login.
const guestName = "Bazaar Customer"

// SessionManager is the authentication state machine: Anonymous to
// Authenticated via password or OTP, back to Anonymous on logout. At most one
// session exists; it is persisted so a restart resumes the login.
type SessionManager struct {
	creds   *CredentialStore
	mailbox *Mailbox
	store   *store.Store
	now     func() time.Time

	mu         sync.Mutex
	challenges map[string]models.OtpChallenge
	cooldowns  map[string]time.Time
}

// NewSessionManager constructs a SessionManager over its collaborators.
func NewSessionManager(creds *CredentialStore, mailbox *Mailbox, st *store.Store) *SessionManager {
	return &SessionManager{
		creds:      creds,
		mailbox:    mailbox,
		store:      st,
		now:        time.Now,
		challenges: make(map[string]models.OtpChallenge),
		cooldowns:  make(map[string]time.Time),
	}
}

// Current returns the persisted session, if any. Unparseable session data is
// treated as absence, not an error.
func (s *SessionManager) Current() (models.Session, bool) {
	var session models.Session
	ok, err := s.store.Get(sessionKey, &session)
	if err != nil || !ok {
		return models.Session{}, false
	}
	return session, true
}

// LoginWithPassword authenticates by email or phone plus password. The
// failure message never reveals which of the two was wrong. A login notice
// is dropped into the account's mailbox, matching the SMS the real gateway
// would send.
func (s *SessionManager) LoginWithPassword(identifier, password string) (models.Session, error) {
	if identifier == "" || password == "" {
		return models.Session{}, validationErr("Email and password are required")
	}

	account, found, err := s.creds.FindByIdentifier(identifier)
	if err != nil {
		return models.Session{}, err
	}
	if !found || !s.creds.Verify(account, password) {
		return models.Session{}, authErr("Invalid email/phone or password")
	}

	session, err := s.establish(account, account.PhoneVerified)
	if err != nil {
		return models.Session{}, err
	}

	if account.Phone != "" {
		notice := models.SmsMessage{
			Type:    models.SmsTypeLoginNotice,
			Message: fmt.Sprintf("New sign-in on %s", s.now().Format(time.RFC1123)),
			SentAt:  s.now().UnixMilli(),
		}
		// Best effort: a full mailbox slot is simply overwritten and a
		// storage hiccup must not fail the login itself.
		_ = s.mailbox.Send(account.Phone, notice)
	}

	return session, nil
}

// RequestOtp issues a fresh 4-digit code for phone, overwriting any earlier
// challenge, delivers it to the phone's mailbox slot and arms the resend
// cooldown. Callers may re-invoke at any time; each call supersedes the
// previous challenge.
func (s *SessionManager) RequestOtp(phone string) (models.OtpChallenge, error) {
	if !phonePattern.MatchString(phone) {
		return models.OtpChallenge{}, validationErr("Please enter a valid 10-digit mobile number")
	}

	code, err := generateOtpCode()
	if err != nil {
		return models.OtpChallenge{}, storageErr(err)
	}

	challenge := models.OtpChallenge{
		Phone:    phone,
		Code:     code,
		IssuedAt: s.now(),
	}

	s.mu.Lock()
	s.challenges[phone] = challenge
	s.cooldowns[phone] = s.now().Add(otpResendCooldown)
	s.mu.Unlock()

	msg := models.SmsMessage{
		Type:   models.SmsTypeOtp,
		Otp:    code,
		SentAt: s.now().UnixMilli(),
	}
	if err := s.mailbox.Send(phone, msg); err != nil {
		return models.OtpChallenge{}, err
	}
	return challenge, nil
}

// ResendAvailableIn reports how long until the advisory cooldown for phone
// lapses. Zero means a resend is immediately available.
func (s *SessionManager) ResendAvailableIn(phone string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.cooldowns[phone]
	if !ok {
		return 0
	}
	if d := until.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}

// VerifyOtp authenticates phone with the submitted code. It succeeds iff the
// code string-equals the last issued challenge for that phone; any other
// value fails. Challenges carry no expiry and no attempt cap — a known gap
// kept for fidelity with the simulated gateway. A phone without an account
// is auto-provisioned as a guest with the phone marked verified.
func (s *SessionManager) VerifyOtp(phone, code string) (models.Session, error) {
	if phone == "" || code == "" {
		return models.Session{}, validationErr("Phone and OTP are required")
	}

	s.mu.Lock()
	challenge, issued := s.challenges[phone]
	s.mu.Unlock()

	if !issued || challenge.Code != code {
		return models.Session{}, authErr("Invalid OTP")
	}

	account, found, err := s.creds.FindByIdentifier(phone)
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		account, err = s.creds.Provision(models.UserAccount{
			Name:          guestName,
			Email:         fmt.Sprintf("customer_%s@bazaar.example", phone),
			Phone:         phone,
			PhoneVerified: true,
		})
		if err != nil {
			return models.Session{}, err
		}
	}

	return s.establish(account, true)
}

// Logout clears the session unconditionally. Logging out while anonymous is
// a no-op.
func (s *SessionManager) Logout() error {
	if err := s.store.Delete(sessionKey); err != nil {
		return storageErr(err)
	}
	return nil
}

// ResetPassword re-applies the registration password rules, then overwrites
// the encoding of the account registered under email.
func (s *SessionManager) ResetPassword(email, newPassword, confirmPassword string) error {
	if email == "" || newPassword == "" || confirmPassword == "" {
		return validationErr("All fields are required")
	}
	if len(newPassword) < 8 {
		return validationErr("Password must be at least 8 characters")
	}
	if newPassword != confirmPassword {
		return validationErr("Passwords do not match")
	}
	return s.creds.UpdatePassword(email, newPassword)
}

func (s *SessionManager) establish(account models.UserAccount, phoneVerified bool) (models.Session, error) {
	session := models.Session{
		UserID:        account.ID,
		Name:          account.Name,
		Email:         account.Email,
		Phone:         account.Phone,
		Avatar:        avatarURL(account.Name),
		EmailVerified: account.EmailVerified,
		PhoneVerified: phoneVerified,
		LoginAt:       s.now(),
	}
	if err := s.store.Put(sessionKey, session); err != nil {
		return models.Session{}, storageErr(err)
	}
	return session, nil
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=ff9900&color=fff"
}

// generateOtpCode draws a uniform 4-digit code in [1000, 9999].
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
