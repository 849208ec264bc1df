package request

type CreateHoldRequest struct {
	ShowID        string   `json:"showId" validate:"required,uuid4"`
	CustomerEmail string   `json:"customerEmail" validate:"required,email"`
	ShowSeatIDs   []string `json:"showSeatIds" validate:"required,min=1,dive,uuid4"`
}
