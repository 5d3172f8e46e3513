package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/tpq/students/controller"
)

func AdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewStudentController(db)

	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Update)
	r.Post("/:id/regenerate-qr", ctl.RegenerateQR)
	r.Delete("/:id", ctl.Delete)
}
