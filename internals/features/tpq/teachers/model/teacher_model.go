package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherModel struct {
	// PK
	TeacherID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teacher_id" json:"teacher_id"`

	TeacherName     string  `gorm:"type:varchar(120);not null;column:teacher_name" json:"teacher_name"`
	TeacherPhone    *string `gorm:"type:varchar(30);column:teacher_phone" json:"teacher_phone,omitempty"`
	TeacherIsActive bool    `gorm:"not null;default:true;column:teacher_is_active" json:"teacher_is_active"`

	// Timestamps
	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"teacher_deleted_at,omitempty"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}
