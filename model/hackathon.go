package model

import "time"

type Hackathon struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	HostID          uint      `json:"host_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RegistrationFee int64     `json:"registration_fee"` // smallest currency unit, 0 = free
	PrizeCurrency   string    `json:"prize_currency"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	CreatedAt       time.Time `json:"created_at"`
}

type Registration struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HackathonID uint      `gorm:"index" json:"hackathon_id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Status      string    `json:"status"` // PENDING | PAID
	CreatedAt   time.Time `json:"created_at"`
}

const (
	RegistrationPending = "PENDING"
	RegistrationPaid    = "PAID"
)
