package dto

import (
	"strings"

	"tpqku_backend/internals/features/tpq/teachers/model"
)

type CreateTeacherRequest struct {
	TeacherName  string  `json:"teacher_name" validate:"required,max=120"`
	TeacherPhone *string `json:"teacher_phone" validate:"omitempty,max=30"`
}

func (in *CreateTeacherRequest) ToModel() *model.TeacherModel {
	return &model.TeacherModel{
		TeacherName:     strings.TrimSpace(in.TeacherName),
		TeacherPhone:    trimPtr(in.TeacherPhone),
		TeacherIsActive: true,
	}
}

type UpdateTeacherRequest struct {
	TeacherName     *string `json:"teacher_name" validate:"omitempty,max=120"`
	TeacherPhone    *string `json:"teacher_phone" validate:"omitempty,max=30"`
	TeacherIsActive *bool   `json:"teacher_is_active"`
}

func (p *UpdateTeacherRequest) ApplyPatch(m *model.TeacherModel) {
	if p.TeacherName != nil && strings.TrimSpace(*p.TeacherName) != "" {
		m.TeacherName = strings.TrimSpace(*p.TeacherName)
	}
	if p.TeacherPhone != nil {
		m.TeacherPhone = trimPtr(p.TeacherPhone)
	}
	if p.TeacherIsActive != nil {
		m.TeacherIsActive = *p.TeacherIsActive
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
