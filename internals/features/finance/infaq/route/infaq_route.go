package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/finance/infaq/controller"
)

// AdminRoutes: buku kas infaq (di belakang JWT)
func AdminRoutes(r fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewInfaqController(db, loc)

	r.Get("/", ctl.List)
	r.Get("/summary", ctl.Summary)
	r.Post("/", ctl.Create)
	r.Delete("/:id", ctl.Delete)
}

// PublicRoutes: pembayaran online + webhook Midtrans
func PublicRoutes(r fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewInfaqController(db, loc)

	r.Post("/pay", ctl.Pay)
	r.Post("/notification", ctl.Notification)
}
