// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/configs"
	middlewares "tpqku_backend/internals/middlewares"
	authMiddleware "tpqku_backend/internals/middlewares/auth"

	journalRoute "tpqku_backend/internals/features/academics/journals/route"
	scoreRoute "tpqku_backend/internals/features/academics/scores/route"
	attendanceRoute "tpqku_backend/internals/features/attendance/attendance/route"
	monitoringRoute "tpqku_backend/internals/features/attendance/monitoring/route"
	reconcileRoute "tpqku_backend/internals/features/attendance/reconcile/route"
	reconcileService "tpqku_backend/internals/features/attendance/reconcile/service"
	infaqRoute "tpqku_backend/internals/features/finance/infaq/route"
	classRoute "tpqku_backend/internals/features/tpq/classes/route"
	studentRoute "tpqku_backend/internals/features/tpq/students/route"
	teacherRoute "tpqku_backend/internals/features/tpq/teachers/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, loc *time.Location) {
	reconcileSvc := reconcileService.NewReconcileService(reconcileService.NewGormStore(db), loc)

	// ===================== CRON =====================
	// Dipanggil scheduler eksternal dengan bearer CRON_SECRET;
	// secret dicek sebelum ada akses data apapun.
	log.Println("[INFO] Setting up CRON group...")
	cron := app.Group("/api/cron", middlewares.CronAuth(configs.CronSecret))
	reconcileRoute.CronRoutes(cron, reconcileSvc)

	// ===================== PUBLIC =====================
	// Alat scan QR + pembayaran infaq online (tanpa JWT)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	attendanceRoute.PublicRoutes(public.Group("/attendance", middlewares.ScanRateLimiter()), db, loc)
	infaqRoute.PublicRoutes(public.Group("/infaq"), db, loc)

	// ===================== ADMIN =====================
	// Token diterbitkan provider auth (Supabase); di sini hanya verifikasi.
	log.Println("[INFO] Setting up ADMIN group (JWT)...")
	admin := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	classRoute.AdminRoutes(admin.Group("/classes"), db)
	teacherRoute.AdminRoutes(admin.Group("/teachers"), db)
	studentRoute.AdminRoutes(admin.Group("/students"), db)

	attendanceGroup := admin.Group("/attendance")
	reconcileRoute.AdminRoutes(attendanceGroup, reconcileSvc)
	attendanceRoute.AdminRoutes(attendanceGroup, db, loc)

	monitoringRoute.AdminRoutes(admin.Group("/monitoring"), db, loc)
	journalRoute.AdminRoutes(admin.Group("/journals"), db, loc)
	scoreRoute.AdminRoutes(admin.Group("/scores"), db, loc)
	infaqRoute.AdminRoutes(admin.Group("/infaq"), db, loc)
}
