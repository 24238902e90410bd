package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/domain"
)

type fakePaymentsRepo struct {
	rows      []domain.PaymentWithOrder
	err       error
	gotUserID uint
}

func (f *fakePaymentsRepo) FindByUser(_ context.Context, userID uint) ([]domain.PaymentWithOrder, error) {
	f.gotUserID = userID
	return f.rows, f.err
}

func TestGetPayments_DerivedStatus(t *testing.T) {
	repo := &fakePaymentsRepo{rows: []domain.PaymentWithOrder{
		{ID: 1, AmountPaid: 1200, PendingAmount: 0},
		{ID: 2, AmountPaid: 500, PendingAmount: 300},
	}}
	svc := NewPaymentsService(repo)

	rows, err := svc.GetPayments(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, uint(9), repo.gotUserID, "lookup must be scoped to the caller")
	assert.Equal(t, domain.PaymentStatusCompleted, rows[0].Status)
	assert.Equal(t, domain.PaymentStatusPending, rows[1].Status)
}

func TestGetPayments_RepositoryError(t *testing.T) {
	svc := NewPaymentsService(&fakePaymentsRepo{err: errors.New("timeout")})

	_, err := svc.GetPayments(context.Background(), 1)
	assert.Error(t, err)
}

func TestDerivedStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentStatusCompleted, domain.Payments{PendingAmount: 0}.DerivedStatus())
	assert.Equal(t, domain.PaymentStatusPending, domain.Payments{PendingAmount: 0.01}.DerivedStatus())
}
