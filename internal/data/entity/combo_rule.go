package entity

type ComboRule struct {
	Base
	Code            string `db:"code"`
	Description     string `db:"description"`
	MinTickets      int    `db:"min_tickets"`
	TargetSku       string `db:"target_sku"`
	DiscountPercent int64  `db:"discount_percent"`
	IsActive        bool   `db:"is_active"`
}
