package domain

import "time"

type Guest struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	FullName      string    `json:"full_name" gorm:"size:255;not null"`
	Phone         string    `json:"phone" gorm:"size:20"`
	Email         string    `json:"email,omitempty" gorm:"size:255;index"`
	IDProofNumber string    `json:"id_proof_number,omitempty" gorm:"size:64"`
	IsBlacklisted bool      `json:"is_blacklisted" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Guest) TableName() string { return "guests" }
