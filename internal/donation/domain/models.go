package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type DonationStatus string

const (
	StatusPending   DonationStatus = "pending"
	StatusCompleted DonationStatus = "completed"
	StatusFailed    DonationStatus = "failed"
	StatusRefunded  DonationStatus = "refunded"
)

// MaxMessageLen bounds the optional public message shown on campaign pages.
const MaxMessageLen = 500

// Donation is the financial record of one confirmed contribution. PaymentID
// is the gateway-supplied idempotency key; the unique index on it is what
// actually guards against double settlement, the service-level pre-check is
// an optimization.
type Donation struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	CampaignID    snowflake.ID   `gorm:"not null;index" json:"campaign_id"`
	DonorID       snowflake.ID   `gorm:"not null;index" json:"donor_id"`
	Amount        int64          `gorm:"not null" json:"amount"`
	PaymentMethod string         `gorm:"type:text;not null" json:"payment_method"`
	PaymentID     string         `gorm:"type:text;not null;uniqueIndex:ux_donations_payment_id" json:"payment_id"`
	ReceiptNumber string         `gorm:"type:text;not null" json:"receipt_number"`
	Status        DonationStatus `gorm:"type:text;not null;index" json:"status"`
	IsAnonymous   bool           `gorm:"not null;default:false" json:"is_anonymous"`
	Message       string         `gorm:"type:text" json:"message,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Donation) TableName() string { return "donations" }

var (
	ErrNotFound         = errors.New("donation_not_found")
	ErrDuplicatePayment = errors.New("duplicate_payment")
)
