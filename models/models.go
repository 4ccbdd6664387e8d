package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TimeSegmentStatus string

const (
	TimeSegmentActive TimeSegmentStatus = "ACTIVE"
	TimeSegmentVoided TimeSegmentStatus = "VOIDED"
)

type RemittanceStatus string

const (
	RemittancePending   RemittanceStatus = "PENDING"
	RemittanceSucceeded RemittanceStatus = "SUCCEEDED"
	RemittanceFailed    RemittanceStatus = "FAILED"
	RemittanceCancelled RemittanceStatus = "CANCELLED"
)

// Decimal columns are TEXT so amounts survive SQLite's numeric affinity untouched.

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName    string    `json:"full_name"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	IsSuperuser bool      `gorm:"not null" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

type Task struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	HourlyRate  decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"hourly_rate"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// WorkLog is a unit of work a user performed against a task. Worklogs are
// created by other parts of the application; this service only reads them.
type WorkLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_worklogs_created_id,priority:2" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	CreatedAt time.Time `gorm:"not null;index:idx_worklogs_created_id,priority:1" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type TimeSegment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	WorkLogID uuid.UUID         `gorm:"column:worklog_id;type:uuid;not null;index" json:"worklog_id"`
	Minutes   int               `gorm:"not null;default:0" json:"minutes"`
	Status    TimeSegmentStatus `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	StartedAt *time.Time        `json:"started_at,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
}

// Adjustment is a manual monetary correction; it counts regardless of sign.
type Adjustment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	WorkLogID uuid.UUID       `gorm:"column:worklog_id;type:uuid;not null;index" json:"worklog_id"`
	Amount    decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"amount"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

type Remittance struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount decimal.Decimal     `gorm:"type:text;not null" json:"total_amount"`
	Status      RemittanceStatus    `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	WorkLogs    []RemittanceWorkLog `gorm:"foreignKey:RemittanceID;constraint:OnDelete:CASCADE" json:"worklogs,omitempty"`
	CreatedAt   time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null" json:"updated_at"`
}

// RemittanceWorkLog is a line item of a remittance. Amount is the value
// computed when the remittance was generated and is never recomputed.
type RemittanceWorkLog struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RemittanceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"remittance_id"`
	WorkLogID    uuid.UUID       `gorm:"column:worklog_id;type:uuid;not null;index" json:"worklog_id"`
	Amount       decimal.Decimal `gorm:"type:text;not null" json:"amount"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
}

func (User) TableName() string              { return "users" }
func (Task) TableName() string              { return "tasks" }
func (WorkLog) TableName() string           { return "worklogs" }
func (TimeSegment) TableName() string       { return "time_segments" }
func (Adjustment) TableName() string        { return "adjustments" }
func (Remittance) TableName() string        { return "remittances" }
func (RemittanceWorkLog) TableName() string { return "remittance_worklogs" }

func (u *User) BeforeCreate(*gorm.DB) error              { u.ID = ensureID(u.ID); return nil }
func (t *Task) BeforeCreate(*gorm.DB) error              { t.ID = ensureID(t.ID); return nil }
func (w *WorkLog) BeforeCreate(*gorm.DB) error           { w.ID = ensureID(w.ID); return nil }
func (s *TimeSegment) BeforeCreate(*gorm.DB) error       { s.ID = ensureID(s.ID); return nil }
func (a *Adjustment) BeforeCreate(*gorm.DB) error        { a.ID = ensureID(a.ID); return nil }
func (r *Remittance) BeforeCreate(*gorm.DB) error        { r.ID = ensureID(r.ID); return nil }
func (l *RemittanceWorkLog) BeforeCreate(*gorm.DB) error { l.ID = ensureID(l.ID); return nil }

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// All lists every model managed by this service, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Task{},
		&WorkLog{},
		&TimeSegment{},
		&Adjustment{},
		&Remittance{},
		&RemittanceWorkLog{},
	}
}
