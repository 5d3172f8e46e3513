package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	StudentNIS  *string `gorm:"type:varchar(30);uniqueIndex:uq_student_nis;column:student_nis" json:"student_nis,omitempty"`
	StudentName string  `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`

	// NULL = belum terdaftar di kelas manapun → dikecualikan dari semua
	// pemrosesan absensi (termasuk auto-alpha & backfill).
	StudentClassID *uuid.UUID `gorm:"type:uuid;column:student_class_id;index:idx_student_class" json:"student_class_id,omitempty"`

	StudentGuardianName  *string `gorm:"type:varchar(120);column:student_guardian_name" json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string `gorm:"type:varchar(30);column:student_guardian_phone" json:"student_guardian_phone,omitempty"`

	// Token kartu QR santri; di-scan alat absensi
	StudentQRToken uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();uniqueIndex:uq_student_qr_token;column:student_qr_token" json:"student_qr_token"`

	// Timestamps
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}

// Enrolled: santri aktif di sebuah kelas
func (m *StudentModel) Enrolled() bool {
	return m.StudentClassID != nil
}
