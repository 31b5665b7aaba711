package dto

import "time"

type RequestListDTO struct {
	ID                     uint       `json:"id"`
	PropertyCode           string     `json:"property_code"`
	UnitNumber             string     `json:"unit_number"`
	Title                  string     `json:"title"`
	Urgency                string     `json:"urgency"`
	RequiredSpecialization string     `json:"required_specialization"`
	Status                 string     `json:"status"`
	WorkerName             string     `json:"worker_name,omitempty"`
	WorkOrderNumber        string     `json:"work_order_number,omitempty"`
	ScheduledDate          *time.Time `json:"scheduled_date,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}
