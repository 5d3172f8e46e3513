package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/tpq/teachers/controller"
)

func AdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTeacherController(db)

	r.Get("/", ctl.List)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
