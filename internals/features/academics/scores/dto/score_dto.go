package dto

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tpqku_backend/internals/features/academics/scores/model"
)

type CreateScoreRequest struct {
	ScoreStudentID uuid.UUID `json:"score_student_id" validate:"required"`
	ScoreClassID   uuid.UUID `json:"score_class_id" validate:"required"`
	ScoreSubject   string    `json:"score_subject" validate:"required,max=60"`
	ScoreKind      string    `json:"score_kind" validate:"required,oneof=harian hafalan ujian"`
	ScoreValue     float64   `json:"score_value" validate:"gte=0,lte=100"`
	ScoreDate      string    `json:"score_date" validate:"required,datetime=2006-01-02"`
	ScoreNotes     *string   `json:"score_notes" validate:"omitempty"`
}

func (in *CreateScoreRequest) ToModel(loc *time.Location) (*model.ScoreModel, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.ScoreDate), loc)
	if err != nil {
		return nil, err
	}
	return &model.ScoreModel{
		ScoreStudentID: in.ScoreStudentID,
		ScoreClassID:   in.ScoreClassID,
		ScoreSubject:   strings.TrimSpace(in.ScoreSubject),
		ScoreKind:      strings.TrimSpace(in.ScoreKind),
		ScoreValue:     in.ScoreValue,
		ScoreDate:      date,
		ScoreNotes:     trimPtr(in.ScoreNotes),
	}, nil
}

type UpdateScoreRequest struct {
	ScoreValue *float64 `json:"score_value" validate:"omitempty,gte=0,lte=100"`
	ScoreNotes *string  `json:"score_notes" validate:"omitempty"`
}

func (p *UpdateScoreRequest) ApplyPatch(m *model.ScoreModel) {
	if p.ScoreValue != nil {
		m.ScoreValue = *p.ScoreValue
	}
	if p.ScoreNotes != nil {
		m.ScoreNotes = trimPtr(p.ScoreNotes)
	}
}

/* =========================================================
   View rapor: nilai per santri dikelompokkan per mapel
   ========================================================= */

type SubjectScores struct {
	Subject string             `json:"subject"`
	Average float64            `json:"average"`
	Items   []model.ScoreModel `json:"items"`
}

type StudentReport struct {
	StudentID uuid.UUID       `json:"student_id"`
	Subjects  []SubjectScores `json:"subjects"`
}

// BuildStudentReport mengelompokkan nilai satu santri per mapel + rata-rata.
func BuildStudentReport(studentID uuid.UUID, rows []model.ScoreModel) StudentReport {
	bySubject := map[string][]model.ScoreModel{}
	for _, r := range rows {
		bySubject[r.ScoreSubject] = append(bySubject[r.ScoreSubject], r)
	}

	report := StudentReport{StudentID: studentID, Subjects: []SubjectScores{}}
	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	for _, s := range subjects {
		items := bySubject[s]
		var sum float64
		for _, it := range items {
			sum += it.ScoreValue
		}
		report.Subjects = append(report.Subjects, SubjectScores{
			Subject: s,
			Average: sum / float64(len(items)),
			Items:   items,
		})
	}
	return report
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
