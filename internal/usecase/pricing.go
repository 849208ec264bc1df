package usecase

import (
	"net/http"
	"strings"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/dto/request"
)

type menuItem struct {
	Code           string
	Name           string
	UnitPriceCents int64
}

// Static concession menu. Prices are integer minor units.
var concessionMenu = map[string]menuItem{
	"LARGE_POPCORN":  {Code: "LARGE_POPCORN", Name: "Large Popcorn", UnitPriceCents: 30000},
	"MEDIUM_POPCORN": {Code: "MEDIUM_POPCORN", Name: "Medium Popcorn", UnitPriceCents: 22000},
	"COKE":           {Code: "COKE", Name: "Coke", UnitPriceCents: 12000},
}

// ComboRuleInput is the pricing-relevant slice of a combo rule row.
type ComboRuleInput struct {
	MinTickets      int
	TargetSku       string
	DiscountPercent int64
}

type ConcessionLine struct {
	ItemCode               string
	Name                   string
	Quantity               int
	UnitPriceCents         int64
	LineSubtotalCents      int64
	DiscountCents          int64
	PayableCents           int64
	DiscountedQuantity     int
	DiscountPercentApplied int64
}

// PersistedConcessionItem is one row to store on the concession order. A line
// with a partial discount splits into a discounted and a full-price row.
type PersistedConcessionItem struct {
	Sku             string
	Name            string
	Quantity        int
	UnitPriceCents  int64
	DiscountPercent int64
}

type CheckoutPricing struct {
	TicketCount              int
	TicketSubtotalCents      int64
	ConcessionSubtotalCents  int64
	SubtotalCents            int64
	ComboDiscountCents       int64
	LoyaltyRedeemPointsUsed  int
	LoyaltyRedeemCents       int64
	TotalDiscountCents       int64
	PayableTotalCents        int64
	EarnedPoints             int
	Concessions              []ConcessionLine
	PersistedConcessionItems []PersistedConcessionItem
}

type checkoutPricingInput struct {
	TicketPricesCents     []int64
	Concessions           []request.ConcessionItemRequest
	ComboRule             *ComboRuleInput
	RedeemPointsRequested int
	AvailablePoints       int
	PointValueCents       int64
	EarnRate              int64
}

// normalizeConcessions groups requested items by SKU, preserving first-seen
// order so pricing output stays deterministic.
func normalizeConcessions(concessions []request.ConcessionItemRequest) ([]string, map[string]int, error) {
	var order []string
	grouped := make(map[string]int)

	for _, concession := range concessions {
		itemCode := strings.ToUpper(strings.TrimSpace(concession.ItemCode))
		if itemCode == "" {
			return nil, nil, apperror.New(http.StatusBadRequest, "INVALID_CONCESSION", "Concession code is required")
		}
		if concession.Quantity <= 0 {
			return nil, nil, apperror.Newf(http.StatusBadRequest, "INVALID_CONCESSION_QUANTITY", "Invalid quantity for concession %s", itemCode)
		}
		if _, ok := concessionMenu[itemCode]; !ok {
			return nil, nil, apperror.Newf(http.StatusBadRequest, "INVALID_CONCESSION", "Unsupported concession item: %s", itemCode)
		}

		if _, seen := grouped[itemCode]; !seen {
			order = append(order, itemCode)
		}
		grouped[itemCode] += concession.Quantity
	}

	return order, grouped, nil
}

func buildConcessionLines(order []string, grouped map[string]int) []ConcessionLine {
	lines := make([]ConcessionLine, 0, len(order))
	for _, itemCode := range order {
		item := concessionMenu[itemCode]
		quantity := grouped[itemCode]
		lineSubtotal := int64(quantity) * item.UnitPriceCents
		lines = append(lines, ConcessionLine{
			ItemCode:          itemCode,
			Name:              item.Name,
			Quantity:          quantity,
			UnitPriceCents:    item.UnitPriceCents,
			LineSubtotalCents: lineSubtotal,
			PayableCents:      lineSubtotal,
		})
	}
	return lines
}

// applyComboDiscount discounts the target SKU line. Every minTickets tickets
// unlock one discounted unit, capped by the quantity actually ordered.
func applyComboDiscount(lines []ConcessionLine, ticketCount int, rule *ComboRuleInput) int64 {
	if rule == nil || ticketCount < rule.MinTickets {
		return 0
	}

	for i := range lines {
		if lines[i].ItemCode != rule.TargetSku {
			continue
		}

		eligibleQuantity := ticketCount / rule.MinTickets
		if lines[i].Quantity < eligibleQuantity {
			eligibleQuantity = lines[i].Quantity
		}
		if eligibleQuantity <= 0 {
			return 0
		}

		// Round half up on the per-unit discount before multiplying.
		discountPerUnit := (lines[i].UnitPriceCents*rule.DiscountPercent + 50) / 100
		discount := int64(eligibleQuantity) * discountPerUnit

		lines[i].DiscountCents = discount
		lines[i].PayableCents = lines[i].LineSubtotalCents - discount
		lines[i].DiscountedQuantity = eligibleQuantity
		lines[i].DiscountPercentApplied = rule.DiscountPercent
		return discount
	}

	return 0
}

func buildPersistedConcessionItems(lines []ConcessionLine) []PersistedConcessionItem {
	var items []PersistedConcessionItem
	for _, line := range lines {
		if line.DiscountedQuantity > 0 {
			items = append(items, PersistedConcessionItem{
				Sku:             line.ItemCode,
				Name:            line.Name,
				Quantity:        line.DiscountedQuantity,
				UnitPriceCents:  line.UnitPriceCents,
				DiscountPercent: line.DiscountPercentApplied,
			})
		}

		if remaining := line.Quantity - line.DiscountedQuantity; remaining > 0 {
			items = append(items, PersistedConcessionItem{
				Sku:            line.ItemCode,
				Name:           line.Name,
				Quantity:       remaining,
				UnitPriceCents: line.UnitPriceCents,
			})
		}
	}
	return items
}

// calculateCheckoutPricing combines ticket prices, concessions, the combo
// discount and loyalty redemption into one integer-cents pricing result.
func calculateCheckoutPricing(input checkoutPricingInput) (*CheckoutPricing, error) {
	ticketCount := len(input.TicketPricesCents)
	if ticketCount <= 0 {
		return nil, apperror.New(http.StatusConflict, "EMPTY_HOLD", "No seats found in hold for checkout")
	}

	var ticketSubtotal int64
	for _, price := range input.TicketPricesCents {
		ticketSubtotal += price
	}

	order, grouped, err := normalizeConcessions(input.Concessions)
	if err != nil {
		return nil, err
	}

	lines := buildConcessionLines(order, grouped)
	var concessionSubtotal int64
	for _, line := range lines {
		concessionSubtotal += line.LineSubtotalCents
	}

	comboDiscount := applyComboDiscount(lines, ticketCount, input.ComboRule)
	subtotal := ticketSubtotal + concessionSubtotal
	payableBeforeLoyalty := subtotal - comboDiscount

	if input.RedeemPointsRequested > input.AvailablePoints {
		return nil, apperror.New(http.StatusUnprocessableEntity, "LOYALTY_INSUFFICIENT_POINTS", "Not enough loyalty points to redeem")
	}

	maxRedeemablePoints := int(payableBeforeLoyalty / input.PointValueCents)
	if input.RedeemPointsRequested > maxRedeemablePoints {
		return nil, apperror.New(http.StatusUnprocessableEntity, "LOYALTY_REDEEM_EXCEEDS_TOTAL", "Redeem points exceed payable amount")
	}

	redeemCents := int64(input.RedeemPointsRequested) * input.PointValueCents
	totalDiscount := comboDiscount + redeemCents
	payableTotal := subtotal - totalDiscount
	earnedPoints := int(payableTotal / (input.EarnRate * input.PointValueCents))

	return &CheckoutPricing{
		TicketCount:              ticketCount,
		TicketSubtotalCents:      ticketSubtotal,
		ConcessionSubtotalCents:  concessionSubtotal,
		SubtotalCents:            subtotal,
		ComboDiscountCents:       comboDiscount,
		LoyaltyRedeemPointsUsed:  input.RedeemPointsRequested,
		LoyaltyRedeemCents:       redeemCents,
		TotalDiscountCents:       totalDiscount,
		PayableTotalCents:        payableTotal,
		EarnedPoints:             earnedPoints,
		Concessions:              lines,
		PersistedConcessionItems: buildPersistedConcessionItems(lines),
	}, nil
}
