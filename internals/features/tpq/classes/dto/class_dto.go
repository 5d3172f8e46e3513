package dto

import (
	"strings"

	"tpqku_backend/internals/features/tpq/classes/model"
)

type CreateClassRequest struct {
	ClassName        string  `json:"class_name" validate:"required,max=80"`
	ClassDescription *string `json:"class_description" validate:"omitempty"`
}

func (in *CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		ClassName:        strings.TrimSpace(in.ClassName),
		ClassDescription: trimPtr(in.ClassDescription),
	}
}

type UpdateClassRequest struct {
	ClassName        *string `json:"class_name" validate:"omitempty,max=80"`
	ClassDescription *string `json:"class_description" validate:"omitempty"`
}

// ApplyPatch: terapkan perubahan ke model existing (in-place)
func (p *UpdateClassRequest) ApplyPatch(m *model.ClassModel) {
	if p.ClassName != nil && strings.TrimSpace(*p.ClassName) != "" {
		m.ClassName = strings.TrimSpace(*p.ClassName)
	}
	if p.ClassDescription != nil {
		m.ClassDescription = trimPtr(p.ClassDescription)
	}
}

// ClassWithCount: item list + jumlah santri aktif
type ClassWithCount struct {
	model.ClassModel
	StudentCount int64 `json:"student_count"`
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
