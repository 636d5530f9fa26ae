package models

import "time"

// User roles.
const (
	RoleAdmin  = "admin"
	RoleCaja   = "caja"
	RoleCocina = "cocina"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255); not null"`
	Email     string `gorm:"type:varchar(255); unique;not null"`
	Password  string `gorm:"type:varchar(255); not null"`
	Role      string `gorm:"type:varchar(255); not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCaja || role == RoleCocina
}
