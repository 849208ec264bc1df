package request

type CancelShowRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
