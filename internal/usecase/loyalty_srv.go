package usecase

import (
	"context"
	"net/http"
	"net/mail"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"

	"go.uber.org/zap"
)

const recentTransactionLimit = 20

type LoyaltyService interface {
	// GetLoyaltyProfile returns the derived point balance plus the customer's
	// most recent ledger entries.
	GetLoyaltyProfile(ctx context.Context, customerEmail string) (*response.LoyaltyProfileResponse, error)
}

type loyaltyService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLoyaltyService(repo *repository.Repository, log *zap.Logger) LoyaltyService {
	return &loyaltyService{
		repo: repo,
		log:  log.With(zap.String("service", "loyalty")),
	}
}

func (s *loyaltyService) GetLoyaltyProfile(ctx context.Context, customerEmail string) (*response.LoyaltyProfileResponse, error) {
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid email address %s", customerEmail)
	}

	summary, err := s.repo.Loyalty.SummaryByEmail(ctx, customerEmail)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Loyalty.RecentByEmail(ctx, customerEmail, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	transactions := make([]response.LoyaltyTransactionResponse, 0, len(entries))
	for _, entry := range entries {
		transaction := response.LoyaltyTransactionResponse{
			ID:        entry.ID.String(),
			Type:      string(entry.Type),
			Points:    entry.Points,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		}
		if entry.BookingID != nil {
			bookingID := entry.BookingID.String()
			transaction.BookingID = &bookingID
		}
		transactions = append(transactions, transaction)
	}

	return &response.LoyaltyProfileResponse{
		CustomerEmail:      summary.CustomerEmail,
		BalancePoints:      summary.BalancePoints,
		EarnedPoints:       summary.EarnedPoints,
		RedeemedPoints:     summary.RedeemedPoints,
		AdjustmentPoints:   summary.AdjustmentPoints,
		RecentTransactions: transactions,
	}, nil
}
