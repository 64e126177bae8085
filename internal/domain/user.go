package domain

import "time"

type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleManager      Role = "MANAGER"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleHousekeeping Role = "HOUSEKEEPING"
	RoleAccountant   Role = "ACCOUNTANT"
)

// CanVoidPayments reports whether the role may reverse folio payments.
func (r Role) CanVoidPayments() bool {
	return r == RoleOwner || r == RoleManager
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Name         string    `json:"name" gorm:"size:255"`
	Role         Role      `json:"role" gorm:"size:20;not null;default:RECEPTIONIST"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
