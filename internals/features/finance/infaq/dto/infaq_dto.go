package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tpqku_backend/internals/features/finance/infaq/model"
)

type CreateInfaqRequest struct {
	InfaqDate        string     `json:"infaq_date" validate:"required,datetime=2006-01-02"`
	InfaqType        string     `json:"infaq_type" validate:"required,oneof=masuk keluar"`
	InfaqAmount      int64      `json:"infaq_amount" validate:"required,gt=0"`
	InfaqStudentID   *uuid.UUID `json:"infaq_student_id"`
	InfaqDescription *string    `json:"infaq_description" validate:"omitempty"`
}

// ToModel: entri kas manual langsung berstatus paid
func (in *CreateInfaqRequest) ToModel(loc *time.Location) (*model.InfaqModel, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.InfaqDate), loc)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(loc)
	return &model.InfaqModel{
		InfaqDate:        date,
		InfaqType:        model.InfaqType(in.InfaqType),
		InfaqAmount:      in.InfaqAmount,
		InfaqStudentID:   in.InfaqStudentID,
		InfaqDescription: trimPtr(in.InfaqDescription),
		InfaqStatus:      model.InfaqPaid,
		InfaqPaidAt:      &now,
	}, nil
}

// PayInfaqRequest: infaq online via Midtrans Snap
type PayInfaqRequest struct {
	InfaqAmount      int64      `json:"infaq_amount" validate:"required,gt=0"`
	DonorName        string     `json:"donor_name" validate:"required,max=120"`
	DonorEmail       string     `json:"donor_email" validate:"required,email"`
	InfaqStudentID   *uuid.UUID `json:"infaq_student_id"`
	InfaqDescription *string    `json:"infaq_description" validate:"omitempty"`
}

// MonthlySummary: ringkasan kas satu bulan
type MonthlySummary struct {
	Month  int   `json:"month"` // 0-indexed
	Year   int   `json:"year"`
	Masuk  int64 `json:"masuk"`
	Keluar int64 `json:"keluar"`
	Saldo  int64 `json:"saldo"`
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
