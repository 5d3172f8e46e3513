package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/attendance/monitoring/controller"
)

func AdminRoutes(r fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewMonitoringController(db, loc)

	r.Get("/attendance", ctl.MonthlyAttendance)
	r.Get("/attendance/export", ctl.ExportMonthlyAttendance)
}
