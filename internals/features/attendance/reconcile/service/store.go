package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateAttendance: insert menabrak unique (student_id, date) di DB.
// Terjadi kalau ada tulisan manual menyelip di antara read dan insert job.
var ErrDuplicateAttendance = errors.New("attendance: duplicate (student_id, date)")

// EnrolledStudent: santri dengan kelas (student_class_id NOT NULL).
// Santri tanpa kelas tidak pernah masuk pemrosesan rekonsiliasi.
type EnrolledStudent struct {
	StudentID uuid.UUID
	ClassID   uuid.UUID
}

// AttendanceRow: bentuk minimum satu baris absensi yang dibaca/ditulis job.
type AttendanceRow struct {
	StudentID uuid.UUID
	ClassID   uuid.UUID
	Date      time.Time
	Status    string
	Time      *time.Time // nil untuk baris backfill
}

// Store: kemampuan penyimpanan yang dibutuhkan job rekonsiliasi.
// Di-inject eksplisit (bukan handle global) supaya job bisa diuji
// dengan store pengganti.
type Store interface {
	// Semua santri dengan student_class_id NOT NULL.
	ListEnrolledStudents(ctx context.Context) ([]EnrolledStudent, error)

	// Semua baris absensi pada satu tanggal, lintas kelas & status.
	ListAttendanceByDate(ctx context.Context, date time.Time) ([]AttendanceRow, error)

	// Batch insert. Harus menolak pelanggaran unique (student_id, date)
	// dengan ErrDuplicateAttendance, bukan menimpa baris lama.
	InsertAttendances(ctx context.Context, rows []AttendanceRow) error
}
