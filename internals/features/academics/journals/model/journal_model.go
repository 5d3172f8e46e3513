package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JournalModel struct {
	// PK
	JournalID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:journal_id" json:"journal_id"`

	// FKs
	JournalClassID   uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_class;column:journal_class_id" json:"journal_class_id"`
	JournalTeacherID uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_teacher;column:journal_teacher_id" json:"journal_teacher_id"`

	JournalDate     time.Time `gorm:"type:date;not null;index:idx_journal_date;column:journal_date" json:"journal_date"`
	JournalMaterial string    `gorm:"type:text;not null;column:journal_material" json:"journal_material"`
	JournalNotes    *string   `gorm:"type:text;column:journal_notes" json:"journal_notes,omitempty"`

	// Detail bebas (target hafalan, halaman iqro per santri, dsb)
	JournalDetail datatypes.JSON `gorm:"type:jsonb;column:journal_detail" json:"journal_detail,omitempty"`

	// Timestamps
	JournalCreatedAt time.Time      `gorm:"column:journal_created_at;autoCreateTime" json:"journal_created_at"`
	JournalUpdatedAt time.Time      `gorm:"column:journal_updated_at;autoUpdateTime" json:"journal_updated_at"`
	JournalDeletedAt gorm.DeletedAt `gorm:"column:journal_deleted_at;index" json:"journal_deleted_at,omitempty"`
}

func (JournalModel) TableName() string {
	return "journals"
}
