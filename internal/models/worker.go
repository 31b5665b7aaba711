package models

import "time"

type Worker struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"index" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"company"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Specialization   string `gorm:"size:30;not null" json:"specialization"`
	Active           bool   `gorm:"default:true" json:"active"`
	EmergencyCapable bool   `gorm:"default:false" json:"emergency_capable"`

	Bookings []Booking `gorm:"foreignKey:WorkerID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
