package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"tpqku_backend/internals/features/attendance/reconcile/service"
)

// StartAutoAlphaScheduler menjalankan job auto-alpha sekali sehari dari
// dalam proses (opsional — produksi biasanya pakai cron eksternal yang
// memanggil /api/cron/auto-alpha).
func StartAutoAlphaScheduler(svc *service.ReconcileService, loc *time.Location) {
	go func() {
		// Jam eksekusi dari env (default: 21.00, setelah jam mengaji)
		hour := 21
		if val := os.Getenv("AUTO_ALPHA_HOUR"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 && parsed <= 23 {
				hour = parsed
			}
		}

		for {
			now := time.Now().In(loc)
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
			if !next.After(now) {
				next = next.AddDate(0, 0, 1)
			}
			time.Sleep(time.Until(next))

			log.Println("[AUTO-ALPHA] Menjalankan penandaan Alpha otomatis...")
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			res, err := svc.AutoAlphaToday(ctx)
			cancel()

			if err != nil {
				log.Printf("[AUTO-ALPHA ERROR] %v", err)
			} else if res.Marked == 0 {
				log.Println("[AUTO-ALPHA] Tidak ada santri yang perlu ditandai")
			} else {
				log.Printf("[AUTO-ALPHA] %d santri ditandai Alpha (%s)", res.Marked, res.Date)
			}
		}
	}()
}
