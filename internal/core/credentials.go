package core

import (
	"encoding/base64"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/store"
)

// accountsKey holds the full collection of registered accounts.
const accountsKey = "bazaar_users"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// PasswordEncoder turns a plaintext password into its stored encoding and
// verifies submissions against it. The engine defaults to bcrypt; the
// reversible legacy encoder exists only to read data written by the old
// client, which stored passwords base64-encoded.
type PasswordEncoder interface {
	Encode(password string) (string, error)
	Verify(encoding, password string) bool
}

// BcryptEncoder is the default one-way encoder.
type BcryptEncoder struct{}

func (BcryptEncoder) Encode(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func (BcryptEncoder) Verify(encoding, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoding), []byte(password)) == nil
}

// LegacyEncoder reproduces the old client's reversible base64 encoding. Not
// suitable for new deployments; kept for migrating existing account data.
type LegacyEncoder struct{}

func (LegacyEncoder) Encode(password string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(password)), nil
}

func (LegacyEncoder) Verify(encoding, password string) bool {
	return encoding == base64.StdEncoding.EncodeToString([]byte(password))
}

// CredentialStore manages the durable collection of registered accounts and
// enforces uniqueness and validation on every write.
type CredentialStore struct {
	store   *store.Store
	encoder PasswordEncoder
	now     func() time.Time
}

// NewCredentialStore constructs a CredentialStore over the shared persistent
// store. A nil encoder selects bcrypt.
func NewCredentialStore(st *store.Store, encoder PasswordEncoder) *CredentialStore {
	if encoder == nil {
		encoder = BcryptEncoder{}
	}
	return &CredentialStore{store: st, encoder: encoder, now: time.Now}
}

func (c *CredentialStore) accounts() ([]models.UserAccount, error) {
	var accounts []models.UserAccount
	if _, err := c.store.Get(accountsKey, &accounts); err != nil {
		return nil, storageErr(err)
	}
	return accounts, nil
}

func (c *CredentialStore) save(accounts []models.UserAccount) error {
	if err := c.store.Put(accountsKey, accounts); err != nil {
		return storageErr(err)
	}
	return nil
}

// RegisterAccount validates the submitted fields in a fixed order and appends
// a new account on success. The first failing rule short-circuits with a
// user-facing message.
func (c *CredentialStore) RegisterAccount(name, email, phone, password, confirmPassword string) (models.UserAccount, error) {
	if name == "" || email == "" || phone == "" || password == "" || confirmPassword == "" {
		return models.UserAccount{}, validationErr("All fields are required")
	}
	if len(password) < 8 {
		return models.UserAccount{}, validationErr("Password must be at least 8 characters")
	}
	if password != confirmPassword {
		return models.UserAccount{}, validationErr("Passwords do not match")
	}
	if !emailPattern.MatchString(email) {
		return models.UserAccount{}, validationErr("Please enter a valid email address")
	}
	if !phonePattern.MatchString(phone) {
		return models.UserAccount{}, validationErr("Please enter a valid 10-digit phone number")
	}

	accounts, err := c.accounts()
	if err != nil {
		return models.UserAccount{}, err
	}
	for _, a := range accounts {
		if a.Email == email || a.Phone == phone {
			return models.UserAccount{}, conflictErr("Email or phone already registered")
		}
	}

	encoding, err := c.encoder.Encode(password)
	if err != nil {
		return models.UserAccount{}, storageErr(err)
	}

	account := models.UserAccount{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		Phone:            phone,
		PasswordEncoding: encoding,
		CreatedAt:        c.now(),
	}

	accounts = append(accounts, account)
	if err := c.save(accounts); err != nil {
		return models.UserAccount{}, err
	}
	return account, nil
}

// FindByIdentifier returns the account whose email or phone equals
// identifier.
func (c *CredentialStore) FindByIdentifier(identifier string) (models.UserAccount, bool, error) {
	accounts, err := c.accounts()
	if err != nil {
		return models.UserAccount{}, false, err
	}
	for _, a := range accounts {
		if a.Email == identifier || a.Phone == identifier {
			return a, true, nil
		}
	}
	return models.UserAccount{}, false, nil
}

// Verify reports whether password matches the account's stored encoding.
func (c *CredentialStore) Verify(account models.UserAccount, password string) bool {
	return c.encoder.Verify(account.PasswordEncoding, password)
}

// Provision appends an account created outside the registration flow, such as
// a guest auto-provisioned on first OTP login. Callers are responsible for
// field validity; uniqueness is still enforced.
func (c *CredentialStore) Provision(account models.UserAccount) (models.UserAccount, error) {
	accounts, err := c.accounts()
	if err != nil {
		return models.UserAccount{}, err
	}
	for _, a := range accounts {
		if a.Email == account.Email || a.Phone == account.Phone {
			return models.UserAccount{}, conflictErr("Email or phone already registered")
		}
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = c.now()
	}

	accounts = append(accounts, account)
	if err := c.save(accounts); err != nil {
		return models.UserAccount{}, err
	}
	return account, nil
}

// UpdatePassword overwrites the encoding of the account registered under
// email. No password history is retained.
func (c *CredentialStore) UpdatePassword(email, newPassword string) error {
	accounts, err := c.accounts()
	if err != nil {
		return err
	}

	for i := range accounts {
		if accounts[i].Email == email {
			encoding, err := c.encoder.Encode(newPassword)
			if err != nil {
				return storageErr(err)
			}
			accounts[i].PasswordEncoding = encoding
			return c.save(accounts)
		}
	}
	return validationErr("User not found")
}
