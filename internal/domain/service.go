package domain

import "time"

// Service услуга тенанта
// Движок слотов читает только длительность и активность
type Service struct {
	ID              int64
	TenantID        int64
	Slug            string
	Name            string
	DurationMinutes int
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
