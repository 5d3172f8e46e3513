package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InfaqType string

const (
	InfaqMasuk  InfaqType = "masuk"
	InfaqKeluar InfaqType = "keluar"
)

type InfaqStatus string

const (
	InfaqPaid     InfaqStatus = "paid"
	InfaqPending  InfaqStatus = "pending"
	InfaqExpired  InfaqStatus = "expired"
	InfaqCanceled InfaqStatus = "canceled"
)

type InfaqModel struct {
	// PK
	InfaqID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:infaq_id" json:"infaq_id"`

	InfaqDate time.Time `gorm:"type:date;not null;index:idx_infaq_date;column:infaq_date" json:"infaq_date"`
	InfaqType InfaqType `gorm:"type:varchar(10);not null;default:masuk;column:infaq_type" json:"infaq_type"`

	// Nominal dalam rupiah utuh
	InfaqAmount int64 `gorm:"not null;column:infaq_amount" json:"infaq_amount"` // DB: CHECK > 0

	// Opsional: infaq atas nama santri tertentu
	InfaqStudentID   *uuid.UUID `gorm:"type:uuid;column:infaq_student_id;index:idx_infaq_student" json:"infaq_student_id,omitempty"`
	InfaqDescription *string    `gorm:"type:text;column:infaq_description" json:"infaq_description,omitempty"`

	// Pembayaran online (Midtrans). Entri kas manual: status langsung paid.
	InfaqOrderID *string     `gorm:"type:varchar(64);uniqueIndex:uq_infaq_order_id;column:infaq_order_id" json:"infaq_order_id,omitempty"`
	InfaqStatus  InfaqStatus `gorm:"type:varchar(10);not null;default:paid;column:infaq_status" json:"infaq_status"`
	InfaqPaidAt  *time.Time  `gorm:"column:infaq_paid_at" json:"infaq_paid_at,omitempty"`

	// Timestamps
	InfaqCreatedAt time.Time      `gorm:"column:infaq_created_at;autoCreateTime" json:"infaq_created_at"`
	InfaqUpdatedAt time.Time      `gorm:"column:infaq_updated_at;autoUpdateTime" json:"infaq_updated_at"`
	InfaqDeletedAt gorm.DeletedAt `gorm:"column:infaq_deleted_at;index" json:"infaq_deleted_at,omitempty"`
}

func (InfaqModel) TableName() string {
	return "infaq"
}
