package payments

import (
	"context"

	"shopmate/domain"
	"shopmate/pkg/logger"
)

type PaymentsRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.PaymentWithOrder, error)
}

type PaymentsService struct {
	paymentsRepo PaymentsRepository
}

func NewPaymentsService(paymentsRepo PaymentsRepository) *PaymentsService {
	return &PaymentsService{
		paymentsRepo: paymentsRepo,
	}
}

// GetPayments returns the caller's payments joined to their orders, with the
// derived paid/pending status filled in.
func (s *PaymentsService) GetPayments(ctx context.Context, userID uint) ([]domain.PaymentWithOrder, error) {
	rows, err := s.paymentsRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to fetch payments", err)
		return nil, err
	}

	for i := range rows {
		if rows[i].PendingAmount > 0 {
			rows[i].Status = domain.PaymentStatusPending
		} else {
			rows[i].Status = domain.PaymentStatusCompleted
		}
	}

	return rows, nil
}
