package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment. Any status may
// follow any other.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a requested service slot. Date is stored as YYYY-MM-DD and
// Time as HH:MM so that lexical order matches chronological order.
type Appointment struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	UserID        string            `json:"user_id" gorm:"type:varchar(36);index;not null"`
	ServiceID     uint              `json:"service_id" gorm:"index;not null"`
	Service       Service           `json:"service" gorm:"constraint:OnDelete:CASCADE"`
	Date          string            `json:"appointment_date" gorm:"column:appointment_date;type:varchar(10);not null"`
	Time          string            `json:"appointment_time" gorm:"column:appointment_time;type:varchar(5);not null"`
	Status        AppointmentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CustomerNotes string            `json:"customer_notes" gorm:"type:text"`
	CreatedAt     time.Time         `json:"created_at"`
}
