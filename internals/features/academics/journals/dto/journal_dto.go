package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tpqku_backend/internals/features/academics/journals/model"
)

type CreateJournalRequest struct {
	JournalClassID   uuid.UUID      `json:"journal_class_id" validate:"required"`
	JournalTeacherID uuid.UUID      `json:"journal_teacher_id" validate:"required"`
	JournalDate      string         `json:"journal_date" validate:"required,datetime=2006-01-02"`
	JournalMaterial  string         `json:"journal_material" validate:"required"`
	JournalNotes     *string        `json:"journal_notes" validate:"omitempty"`
	JournalDetail    datatypes.JSON `json:"journal_detail" validate:"omitempty"`
}

func (in *CreateJournalRequest) ToModel(loc *time.Location) (*model.JournalModel, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.JournalDate), loc)
	if err != nil {
		return nil, err
	}
	return &model.JournalModel{
		JournalClassID:   in.JournalClassID,
		JournalTeacherID: in.JournalTeacherID,
		JournalDate:      date,
		JournalMaterial:  strings.TrimSpace(in.JournalMaterial),
		JournalNotes:     trimPtr(in.JournalNotes),
		JournalDetail:    in.JournalDetail,
	}, nil
}

type UpdateJournalRequest struct {
	JournalMaterial *string        `json:"journal_material" validate:"omitempty"`
	JournalNotes    *string        `json:"journal_notes" validate:"omitempty"`
	JournalDetail   datatypes.JSON `json:"journal_detail" validate:"omitempty"`
}

func (p *UpdateJournalRequest) ApplyPatch(m *model.JournalModel) {
	if p.JournalMaterial != nil && strings.TrimSpace(*p.JournalMaterial) != "" {
		m.JournalMaterial = strings.TrimSpace(*p.JournalMaterial)
	}
	if p.JournalNotes != nil {
		m.JournalNotes = trimPtr(p.JournalNotes)
	}
	if len(p.JournalDetail) > 0 {
		m.JournalDetail = p.JournalDetail
	}
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
