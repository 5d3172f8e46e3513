package service

import (
	"fmt"
	"log"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/finance/infaq/model"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken membuat token Snap Midtrans untuk satu entri infaq online.
func GenerateSnapToken(m model.InfaqModel, name string, email string) (string, error) {
	if m.InfaqOrderID == nil {
		return "", fmt.Errorf("infaq %s belum punya order_id", m.InfaqID)
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *m.InfaqOrderID,
			GrossAmt: m.InfaqAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// HandleInfaqStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
func HandleInfaqStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	var entry model.InfaqModel
	if err := db.Where("infaq_order_id = ?", orderID).First(&entry).Error; err != nil {
		log.Println("[ERROR] Entri infaq tidak ditemukan:", err)
		return fmt.Errorf("infaq with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		now := time.Now()
		entry.InfaqStatus = model.InfaqPaid
		entry.InfaqPaidAt = &now
	case "expire":
		entry.InfaqStatus = model.InfaqExpired
	case "cancel":
		entry.InfaqStatus = model.InfaqCanceled
	default:
		log.Println("[INFO] Status tidak diproses:", status)
		return nil
	}

	if err := db.Save(&entry).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan status infaq:", err)
		return err
	}
	return nil
}
