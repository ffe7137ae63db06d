package models

// SmsMessage is the payload held in a phone number's one-slot mailbox.
type SmsMessage struct {
	Type    string `json:"type"`
	Otp     string `json:"otp,omitempty"`
	Message string `json:"message,omitempty"`
	SentAt  int64  `json:"sentAt"`
}

// Message types written by the session manager.
const (
	SmsTypeOtp         = "otp"
	SmsTypeLoginNotice = "login_notice"
)

// Notification is a transient in-process message shown to the user and
// auto-dismissed after its duration elapses.
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
