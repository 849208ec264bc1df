package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShowStatus string

const (
	ShowStatusScheduled ShowStatus = "SCHEDULED"
	ShowStatusCancelled ShowStatus = "CANCELLED"
	ShowStatusCompleted ShowStatus = "COMPLETED"
)

type Auditorium struct {
	Base
	Name string `db:"name"`
	Rows int    `db:"rows"`
	Cols int    `db:"cols"`
}

type Show struct {
	Base
	AuditoriumID uuid.UUID  `db:"auditorium_id"`
	MovieTitle   string     `db:"movie_title"`
	StartsAt     time.Time  `db:"starts_at"`
	IntervalAt   *time.Time `db:"interval_at"`
	Status       ShowStatus `db:"status"`
}

// IsBookable reports whether new holds may still be created for the show.
func (s *Show) IsBookable() bool {
	return s.Status == ShowStatusScheduled
}
