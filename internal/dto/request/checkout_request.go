package request

type ConcessionItemRequest struct {
	ItemCode string `json:"itemCode" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	HoldID         string                  `json:"holdId" validate:"required,uuid4"`
	Concessions    []ConcessionItemRequest `json:"concessions" validate:"omitempty,dive"`
	RedeemPoints   int                     `json:"redeemPoints" validate:"gte=0"`
	PaymentMethod  string                  `json:"paymentMethod" validate:"required,oneof=MOCK_CARD MOCK_UPI MOCK_NETBANKING MOCK_FAIL"`
	CustomerPhone  string                  `json:"customerPhone" validate:"omitempty,min=7,max=20"`
	IdempotencyKey string                  `json:"idempotencyKey" validate:"omitempty,max=100"`
}
