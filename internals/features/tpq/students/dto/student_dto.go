package dto

import (
	"strings"

	"github.com/google/uuid"

	"tpqku_backend/internals/features/tpq/students/model"
)

type CreateStudentRequest struct {
	StudentNIS           *string    `json:"student_nis" validate:"omitempty,max=30"`
	StudentName          string     `json:"student_name" validate:"required,max=120"`
	StudentClassID       *uuid.UUID `json:"student_class_id"` // nil = belum masuk kelas
	StudentGuardianName  *string    `json:"student_guardian_name" validate:"omitempty,max=120"`
	StudentGuardianPhone *string    `json:"student_guardian_phone" validate:"omitempty,max=30"`
}

func (in *CreateStudentRequest) ToModel() *model.StudentModel {
	return &model.StudentModel{
		StudentNIS:           trimPtr(in.StudentNIS),
		StudentName:          strings.TrimSpace(in.StudentName),
		StudentClassID:       in.StudentClassID,
		StudentGuardianName:  trimPtr(in.StudentGuardianName),
		StudentGuardianPhone: trimPtr(in.StudentGuardianPhone),
	}
}

type UpdateStudentRequest struct {
	StudentNIS           *string `json:"student_nis" validate:"omitempty,max=30"`
	StudentName          *string `json:"student_name" validate:"omitempty,max=120"`
	StudentGuardianName  *string `json:"student_guardian_name" validate:"omitempty,max=120"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,max=30"`

	// Pindah/keluar kelas lewat field terpisah: SetClass=true + ClassID nil
	// artinya keluarkan dari kelas (jadi tidak terdaftar).
	SetClass       bool       `json:"set_class"`
	StudentClassID *uuid.UUID `json:"student_class_id"`
}

func (p *UpdateStudentRequest) ApplyPatch(m *model.StudentModel) {
	if p.StudentNIS != nil {
		m.StudentNIS = trimPtr(p.StudentNIS)
	}
	if p.StudentName != nil && strings.TrimSpace(*p.StudentName) != "" {
		m.StudentName = strings.TrimSpace(*p.StudentName)
	}
	if p.StudentGuardianName != nil {
		m.StudentGuardianName = trimPtr(p.StudentGuardianName)
	}
	if p.StudentGuardianPhone != nil {
		m.StudentGuardianPhone = trimPtr(p.StudentGuardianPhone)
	}
	if p.SetClass {
		m.StudentClassID = p.StudentClassID
	}
}

type ListStudentQuery struct {
	ClassID      *string `query:"class_id"`
	EnrolledOnly bool    `query:"enrolled_only"`
	Search       *string `query:"q"`
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
