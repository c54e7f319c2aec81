package models

import (
	"time"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
)

// RunModel is the GORM database model for recorded runs (infrastructure concern)
type RunModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Algorithm       string    `gorm:"not null;index;type:varchar(50)"`
	Operation       string    `gorm:"not null;type:varchar(50)"`
	Status          string    `gorm:"not null;index;type:varchar(10)"`
	ErrorMessage    string    `gorm:"type:varchar(1024)"`
	StepCount       int       `gorm:"type:integer"`
	Trace           []byte
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string {
	return "runs"
}

// ToDomain converts GORM model to domain entity
func (m *RunModel) ToDomain() *runs.RunMeta {
	return &runs.RunMeta{
		ID:              m.ID,
		Algorithm:       m.Algorithm,
		Operation:       m.Operation,
		Status:          m.Status,
		ErrorMessage:    m.ErrorMessage,
		StepCount:       m.StepCount,
		Trace:           m.Trace,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RunModel) FromDomain(r *runs.RunMeta) {
	m.ID = r.ID
	m.Algorithm = r.Algorithm
	m.Operation = r.Operation
	m.Status = r.Status
	m.ErrorMessage = r.ErrorMessage
	m.StepCount = r.StepCount
	m.Trace = r.Trace
	m.DateTimeCreated = r.DateTimeCreated
}
