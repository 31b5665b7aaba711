package dto

import "time"

type BookingListDTO struct {
	ID              uint       `json:"id"`
	WorkOrderNumber string     `json:"work_order_number"`
	ScheduledDate   time.Time  `json:"scheduled_date"`
	AssignedAt      time.Time  `json:"assigned_at"`
	CompletionState string     `json:"completion_state"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}
