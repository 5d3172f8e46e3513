package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	attModel "tpqku_backend/internals/features/attendance/attendance/model"
	studentModel "tpqku_backend/internals/features/tpq/students/model"
)

// GormStore: implementasi Store di atas PostgreSQL (Supabase) via GORM.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ListEnrolledStudents(ctx context.Context) ([]EnrolledStudent, error) {
	var rows []studentModel.StudentModel
	if err := s.DB.WithContext(ctx).
		Select("student_id", "student_class_id").
		Where("student_class_id IS NOT NULL").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}

	out := make([]EnrolledStudent, 0, len(rows))
	for _, r := range rows {
		if r.StudentClassID == nil {
			continue
		}
		out = append(out, EnrolledStudent{
			StudentID: r.StudentID,
			ClassID:   *r.StudentClassID,
		})
	}
	return out, nil
}

func (s *GormStore) ListAttendanceByDate(ctx context.Context, date time.Time) ([]AttendanceRow, error) {
	var rows []attModel.AttendanceModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list attendance %s: %w", date.Format("2006-01-02"), err)
	}

	out := make([]AttendanceRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, AttendanceRow{
			StudentID: r.AttendanceStudentID,
			ClassID:   r.AttendanceClassID,
			Date:      r.AttendanceDate,
			Status:    r.AttendanceStatus,
			Time:      r.AttendanceTime,
		})
	}
	return out, nil
}

func (s *GormStore) InsertAttendances(ctx context.Context, rows []AttendanceRow) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]attModel.AttendanceModel, 0, len(rows))
	for _, r := range rows {
		models = append(models, attModel.AttendanceModel{
			AttendanceStudentID: r.StudentID,
			AttendanceClassID:   r.ClassID,
			AttendanceDate:      r.Date,
			AttendanceStatus:    r.Status,
			AttendanceTime:      r.Time,
		})
	}

	if err := s.DB.WithContext(ctx).Create(&models).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateAttendance, err)
		}
		return fmt.Errorf("insert attendance batch (%d rows): %w", len(rows), err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
