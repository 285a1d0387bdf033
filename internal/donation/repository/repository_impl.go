package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/donation/domain"
	"github.com/nepfund/platform/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, donation *domain.Donation) error {
	err := conn.WithContext(ctx).Exec(
		`INSERT INTO donations (id, campaign_id, donor_id, amount, payment_method, payment_id, receipt_number, status, is_anonymous, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		donation.ID,
		donation.CampaignID,
		donation.DonorID,
		donation.Amount,
		donation.PaymentMethod,
		donation.PaymentID,
		donation.ReceiptNumber,
		donation.Status,
		donation.IsAnonymous,
		donation.Message,
		donation.CreatedAt,
	).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicatePayment
	}
	return err
}

func (r *repo) FindByPaymentID(ctx context.Context, conn *gorm.DB, paymentID string) (*domain.Donation, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, nil
	}
	var donation domain.Donation
	err := conn.WithContext(ctx).Raw(
		`SELECT id, campaign_id, donor_id, amount, payment_method, payment_id, receipt_number, status, is_anonymous, message, created_at
		 FROM donations WHERE payment_id = ?`,
		paymentID,
	).Scan(&donation).Error
	if err != nil {
		return nil, err
	}
	if donation.ID == 0 {
		return nil, nil
	}
	return &donation, nil
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, id snowflake.ID) error {
	return conn.WithContext(ctx).Exec(`DELETE FROM donations WHERE id = ?`, id).Error
}
