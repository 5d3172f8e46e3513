package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoreModel struct {
	// PK
	ScoreID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:score_id" json:"score_id"`

	// FKs
	ScoreStudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_score_student;column:score_student_id" json:"score_student_id"`
	ScoreClassID   uuid.UUID `gorm:"type:uuid;not null;index:idx_score_class;column:score_class_id" json:"score_class_id"`

	ScoreSubject string    `gorm:"type:varchar(60);not null;column:score_subject" json:"score_subject"`
	ScoreKind    string    `gorm:"type:varchar(30);not null;column:score_kind" json:"score_kind"` // harian / hafalan / ujian
	ScoreValue   float64   `gorm:"type:numeric(5,2);not null;column:score_value" json:"score_value"` // DB: CHECK 0..100
	ScoreDate    time.Time `gorm:"type:date;not null;index:idx_score_date;column:score_date" json:"score_date"`
	ScoreNotes   *string   `gorm:"type:text;column:score_notes" json:"score_notes,omitempty"`

	// Timestamps
	ScoreCreatedAt time.Time      `gorm:"column:score_created_at;autoCreateTime" json:"score_created_at"`
	ScoreUpdatedAt time.Time      `gorm:"column:score_updated_at;autoUpdateTime" json:"score_updated_at"`
	ScoreDeletedAt gorm.DeletedAt `gorm:"column:score_deleted_at;index" json:"score_deleted_at,omitempty"`
}

func (ScoreModel) TableName() string {
	return "scores"
}
