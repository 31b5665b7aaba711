package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkerID  uint `gorm:"index" json:"worker_id"`
	RequestID uint `gorm:"index" json:"request_id"`

	WorkOrderNumber string    `gorm:"size:20;not null" json:"work_order_number"`
	ScheduledDate   time.Time `gorm:"index" json:"scheduled_date"`
	AssignedAt      time.Time `json:"assigned_at"`
	Notes           string    `gorm:"size:255" json:"notes"`

	CompletionState string     `gorm:"size:30;default:'pending'" json:"completion_state"`
	CompletedAt     *time.Time `json:"completed_at"`
	CompletionNotes string     `gorm:"size:255" json:"completion_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
