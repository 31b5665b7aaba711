package models

import "time"

type MaintenanceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint `gorm:"index" json:"company_id"`

	PropertyID uint     `gorm:"index" json:"property_id"`
	Property   Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"property"`

	TenantID *uint  `json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tenant"`

	UnitNumber  string `gorm:"size:20;not null" json:"unit_number"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Urgency                string `gorm:"size:20;default:'normal'" json:"urgency"`
	RequiredSpecialization string `gorm:"size:30" json:"required_specialization"`
	PreferredTimeText      string `gorm:"size:100" json:"preferred_time_text"`

	Status string `gorm:"size:20;default:'draft'" json:"status"`

	WorkerID        *uint      `json:"worker_id"`
	Worker          *Worker    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"worker,omitempty"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	WorkOrderNumber string     `gorm:"size:20" json:"work_order_number"`

	DeclinedAt *time.Time `json:"declined_at"`
	FailedAt   *time.Time `json:"failed_at"`
	ClosedAt   *time.Time `json:"closed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
