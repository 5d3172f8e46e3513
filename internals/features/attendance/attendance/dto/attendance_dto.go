package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tpqku_backend/internals/features/attendance/attendance/model"
)

/* =========================================================
   UPSERT (aksi guru manual)
   ========================================================= */

type UpsertAttendanceRequest struct {
	AttendanceStudentID uuid.UUID `json:"attendance_student_id" validate:"required"`
	AttendanceDate      string    `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	AttendanceStatus    string    `json:"attendance_status" validate:"required"`
	AttendanceTime      *string   `json:"attendance_time" validate:"omitempty,datetime=15:04:05"`
}

// ToModel: konversi request → model (class_id diisi controller dari data santri)
func (in *UpsertAttendanceRequest) ToModel(classID uuid.UUID, loc *time.Location) (*model.AttendanceModel, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.AttendanceDate), loc)
	if err != nil {
		return nil, err
	}

	m := &model.AttendanceModel{
		AttendanceStudentID: in.AttendanceStudentID,
		AttendanceClassID:   classID,
		AttendanceDate:      date,
		AttendanceStatus:    strings.TrimSpace(in.AttendanceStatus),
	}

	if in.AttendanceTime != nil && strings.TrimSpace(*in.AttendanceTime) != "" {
		tod, err := time.Parse("15:04:05", strings.TrimSpace(*in.AttendanceTime))
		if err != nil {
			return nil, err
		}
		t := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc)
		m.AttendanceTime = &t
	}
	return m, nil
}

/* =========================================================
   SCAN QR
   ========================================================= */

type ScanAttendanceRequest struct {
	QRToken string `json:"qr_token" validate:"required,uuid"`
}

/* =========================================================
   LIST / FILTER
   ========================================================= */

type ListAttendanceQuery struct {
	Date      *string `query:"date"`
	ClassID   *string `query:"class_id"`
	StudentID *string `query:"student_id"`
	Status    *string `query:"status"`
}
