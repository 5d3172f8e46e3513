package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceModel struct {
	// PK
	AttendanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`

	// Satu baris per (santri, tanggal) — dijaga unique index di DB.
	// Insert job rekonsiliasi tidak boleh melanggarnya; baris duplikat
	// ditolak DB (23505), bukan di-overwrite diam-diam.
	AttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_student_date;column:attendance_student_id" json:"attendance_student_id"`
	AttendanceDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_student_date;index:idx_attendance_date;column:attendance_date" json:"attendance_date"`

	// Denormalisasi dari santri saat tulis
	AttendanceClassID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_class;column:attendance_class_id" json:"attendance_class_id"`

	// Hadir / Sakit / Izin / Alpha / Libur (CHECK constraint di DB)
	AttendanceStatus string `gorm:"type:varchar(10);not null;index:idx_attendance_status;column:attendance_status" json:"attendance_status"`

	// Jam absen. NULL untuk baris hasil backfill (bukan momen check-in nyata).
	AttendanceTime *time.Time `gorm:"column:attendance_time" json:"attendance_time,omitempty"`

	// Timestamps
	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}
