package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tpqku_backend/internals/features/academics/journals/controller"
)

func AdminRoutes(r fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewJournalController(db, loc)

	r.Get("/", ctl.List)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
