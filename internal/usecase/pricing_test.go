package usecase

import (
	"testing"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() checkoutPricingInput {
	return checkoutPricingInput{
		TicketPricesCents: []int64{25000, 25000},
		PointValueCents:   100,
		EarnRate:          10,
	}
}

func TestCalculateCheckoutPricing_TicketsOnly(t *testing.T) {
	pricing, err := calculateCheckoutPricing(baseInput())
	require.NoError(t, err)

	assert.Equal(t, 2, pricing.TicketCount)
	assert.Equal(t, int64(50000), pricing.TicketSubtotalCents)
	assert.Equal(t, int64(50000), pricing.SubtotalCents)
	assert.Equal(t, int64(0), pricing.TotalDiscountCents)
	assert.Equal(t, int64(50000), pricing.PayableTotalCents)
	// 50000 cents payable / (10 currency units * 100 cents) = 50 points.
	assert.Equal(t, 50, pricing.EarnedPoints)
	assert.Empty(t, pricing.PersistedConcessionItems)
}

func TestCalculateCheckoutPricing_EmptyHold(t *testing.T) {
	input := baseInput()
	input.TicketPricesCents = nil

	_, err := calculateCheckoutPricing(input)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "EMPTY_HOLD"))
}

func TestCalculateCheckoutPricing_ComboDiscount(t *testing.T) {
	input := baseInput()
	input.Concessions = []request.ConcessionItemRequest{
		{ItemCode: "LARGE_POPCORN", Quantity: 2},
		{ItemCode: "COKE", Quantity: 1},
	}
	// 2 tickets unlock 20% off one LARGE_POPCORN per 2 tickets.
	input.ComboRule = &ComboRuleInput{MinTickets: 2, TargetSku: "LARGE_POPCORN", DiscountPercent: 20}

	pricing, err := calculateCheckoutPricing(input)
	require.NoError(t, err)

	assert.Equal(t, int64(72000), pricing.ConcessionSubtotalCents)
	// One eligible unit: 30000 * 20% = 6000.
	assert.Equal(t, int64(6000), pricing.ComboDiscountCents)
	assert.Equal(t, int64(122000), pricing.SubtotalCents)
	assert.Equal(t, int64(116000), pricing.PayableTotalCents)

	// The popcorn line splits into one discounted and one full-price row.
	require.Len(t, pricing.PersistedConcessionItems, 3)
	assert.Equal(t, "LARGE_POPCORN", pricing.PersistedConcessionItems[0].Sku)
	assert.Equal(t, 1, pricing.PersistedConcessionItems[0].Quantity)
	assert.Equal(t, int64(20), pricing.PersistedConcessionItems[0].DiscountPercent)
	assert.Equal(t, "LARGE_POPCORN", pricing.PersistedConcessionItems[1].Sku)
	assert.Equal(t, 1, pricing.PersistedConcessionItems[1].Quantity)
	assert.Equal(t, int64(0), pricing.PersistedConcessionItems[1].DiscountPercent)
	assert.Equal(t, "COKE", pricing.PersistedConcessionItems[2].Sku)
}

func TestCalculateCheckoutPricing_ComboEligibleQuantityCappedByOrder(t *testing.T) {
	input := baseInput()
	input.TicketPricesCents = []int64{25000, 25000, 25000, 25000, 25000, 25000}
	input.Concessions = []request.ConcessionItemRequest{{ItemCode: "LARGE_POPCORN", Quantity: 2}}
	input.ComboRule = &ComboRuleInput{MinTickets: 2, TargetSku: "LARGE_POPCORN", DiscountPercent: 20}

	pricing, err := calculateCheckoutPricing(input)
	require.NoError(t, err)

	// 6 tickets would unlock 3 discounted units, but only 2 were ordered.
	assert.Equal(t, int64(12000), pricing.ComboDiscountCents)
	assert.Equal(t, 2, pricing.Concessions[0].DiscountedQuantity)
}

func TestCalculateCheckoutPricing_ComboBelowThreshold(t *testing.T) {
	input := baseInput()
	input.TicketPricesCents = []int64{25000}
	input.Concessions = []request.ConcessionItemRequest{{ItemCode: "LARGE_POPCORN", Quantity: 1}}
	input.ComboRule = &ComboRuleInput{MinTickets: 2, TargetSku: "LARGE_POPCORN", DiscountPercent: 20}

	pricing, err := calculateCheckoutPricing(input)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pricing.ComboDiscountCents)
}

func TestCalculateCheckoutPricing_DuplicateSkusAreGrouped(t *testing.T) {
	input := baseInput()
	input.Concessions = []request.ConcessionItemRequest{
		{ItemCode: "coke", Quantity: 1},
		{ItemCode: " COKE ", Quantity: 2},
	}

	pricing, err := calculateCheckoutPricing(input)
	require.NoError(t, err)

	require.Len(t, pricing.Concessions, 1)
	assert.Equal(t, "COKE", pricing.Concessions[0].ItemCode)
	assert.Equal(t, 3, pricing.Concessions[0].Quantity)
	assert.Equal(t, int64(36000), pricing.ConcessionSubtotalCents)
}

func TestCalculateCheckoutPricing_UnknownConcession(t *testing.T) {
	input := baseInput()
	input.Concessions = []request.ConcessionItemRequest{{ItemCode: "NACHOS", Quantity: 1}}

	_, err := calculateCheckoutPricing(input)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "INVALID_CONCESSION"))
}

func TestCalculateCheckoutPricing_LoyaltyRedemption(t *testing.T) {
	input := baseInput()
	input.RedeemPointsRequested = 100
	input.AvailablePoints = 150

	pricing, err := calculateCheckoutPricing(input)
	require.NoError(t, err)

	assert.Equal(t, 100, pricing.LoyaltyRedeemPointsUsed)
	assert.Equal(t, int64(10000), pricing.LoyaltyRedeemCents)
	assert.Equal(t, int64(40000), pricing.PayableTotalCents)
	// Earn is computed on the post-redemption payable amount.
	assert.Equal(t, 40, pricing.EarnedPoints)
}

func TestCalculateCheckoutPricing_InsufficientPoints(t *testing.T) {
	input := baseInput()
	input.RedeemPointsRequested = 100
	input.AvailablePoints = 50

	_, err := calculateCheckoutPricing(input)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "LOYALTY_INSUFFICIENT_POINTS"))
}

func TestCalculateCheckoutPricing_RedeemExceedsPayable(t *testing.T) {
	input := baseInput()
	// 50000 cents payable supports at most 500 points at 100 cents each.
	input.RedeemPointsRequested = 501
	input.AvailablePoints = 1000

	_, err := calculateCheckoutPricing(input)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "LOYALTY_REDEEM_EXCEEDS_TOTAL"))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, "2s", retryDelay(0, 60).String())
	assert.Equal(t, "2s", retryDelay(1, 60).String())
	assert.Equal(t, "4s", retryDelay(2, 60).String())
	assert.Equal(t, "8s", retryDelay(3, 60).String())
	assert.Equal(t, "32s", retryDelay(5, 60).String())
	// 2^6 = 64 exceeds the notification cap.
	assert.Equal(t, "1m0s", retryDelay(6, 60).String())
	// The refund cap is higher, so attempt 6 still backs off exponentially.
	assert.Equal(t, "1m4s", retryDelay(6, 120).String())
	assert.Equal(t, "2m0s", retryDelay(7, 120).String())
}
