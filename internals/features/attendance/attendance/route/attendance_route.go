package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/attendance/attendance/controller"
)

// AdminRoutes: CRUD absensi (di belakang JWT)
func AdminRoutes(r fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewAttendanceController(db, loc)

	r.Get("/", ctl.List)
	r.Post("/", ctl.Upsert)
	r.Delete("/reset", ctl.ResetDay)
	r.Delete("/:id", ctl.Delete)
}

// PublicRoutes: endpoint alat scan QR (rate-limited di group)
func PublicRoutes(r fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewAttendanceController(db, loc)

	r.Post("/scan", ctl.Scan)
}
