package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supershop/m/domain"
)

func TestComputeDiscountsManualOnly(t *testing.T) {
	d, err := ComputeDiscounts(1000, nil, 10, domain.PaymentCash)
	require.NoError(t, err)
	assert.InDelta(t, 100, d.Manual, 1e-9)
	assert.Zero(t, d.Loyalty)
	assert.Zero(t, d.OneCard)
	assert.InDelta(t, 900, d.Payable(), 1e-9)
}

func TestComputeDiscountsOneCardOnRemainder(t *testing.T) {
	// 5% is computed on the post-manual remainder, not the gross:
	// (1000-100)*0.05 = 45, payable 855.
	d, err := ComputeDiscounts(1000, nil, 10, domain.PaymentOneCard)
	require.NoError(t, err)
	assert.InDelta(t, 100, d.Manual, 1e-9)
	assert.InDelta(t, 45, d.OneCard, 1e-9)
	assert.InDelta(t, 855, d.Payable(), 1e-9)
}

func TestComputeDiscountsMilestonePlusManual(t *testing.T) {
	customer := &domain.Customer{Phone: "0171", TotalSpending: 100000}
	d, err := ComputeDiscounts(5000, customer, 30, domain.PaymentCash)
	require.NoError(t, err)
	assert.InDelta(t, 500, d.Loyalty, 1e-9)
	assert.InDelta(t, 1500, d.Manual, 1e-9)
	assert.InDelta(t, 2000, d.Total(), 1e-9)
	assert.InDelta(t, 3000, d.Payable(), 1e-9)
	assert.InDelta(t, 100000, d.Milestone, 1e-9)
}

func TestComputeDiscountsPayableClampsToZero(t *testing.T) {
	customer := &domain.Customer{Phone: "0171", TotalSpending: 100000}
	d, err := ComputeDiscounts(5000, customer, 100, domain.PaymentOneCard)
	require.NoError(t, err)
	// Manual 100% plus milestone 10% exceeds the gross; payable must
	// clamp at zero and the card discount must not go negative.
	assert.Zero(t, d.OneCard)
	assert.Zero(t, d.Payable())
}

func TestComputeDiscountsMilestoneConsumedNotRegranted(t *testing.T) {
	customer := &domain.Customer{Phone: "0171", TotalSpending: 150000, LastMilestone: 100000}
	d, err := ComputeDiscounts(1000, customer, 0, domain.PaymentCash)
	require.NoError(t, err)
	assert.Zero(t, d.Loyalty)
	assert.Zero(t, d.Milestone)
}

func TestComputeDiscountsHighestUnconsumedMilestone(t *testing.T) {
	customer := &domain.Customer{Phone: "0171", TotalSpending: 320000, LastMilestone: 100000}
	d, err := ComputeDiscounts(1000, customer, 0, domain.PaymentCash)
	require.NoError(t, err)
	assert.InDelta(t, 300000, d.Milestone, 1e-9)
	assert.InDelta(t, 100, d.Loyalty, 1e-9)
}

func TestComputeDiscountsGuestGetsNoLoyalty(t *testing.T) {
	d, err := ComputeDiscounts(1000, nil, 0, domain.PaymentCash)
	require.NoError(t, err)
	assert.Zero(t, d.Loyalty)
	assert.InDelta(t, 1000, d.Payable(), 1e-9)
}

func TestComputeDiscountsValidation(t *testing.T) {
	_, err := ComputeDiscounts(1000, nil, -1, domain.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscountPercent)

	_, err = ComputeDiscounts(1000, nil, 101, domain.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscountPercent)

	_, err = ComputeDiscounts(1000, nil, 0, domain.PaymentMethod(9))
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}
