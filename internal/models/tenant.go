package models

import "time"

// Morador simples, sem login, vinculado à unidade do imóvel
type Tenant struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CompanyID  uint `json:"company_id"`
	PropertyID uint `json:"property_id"`

	UnitNumber string `gorm:"size:20" json:"unit_number"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
