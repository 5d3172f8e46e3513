package route

import (
	"github.com/gofiber/fiber/v2"

	"tpqku_backend/internals/features/attendance/reconcile/controller"
	"tpqku_backend/internals/features/attendance/reconcile/service"
)

// CronRoutes: endpoint yang dipanggil scheduler (dilindungi CronAuth di group)
func CronRoutes(r fiber.Router, svc *service.ReconcileService) {
	ctl := controller.NewReconcileController(svc)
	r.Get("/auto-alpha", ctl.AutoAlpha)
}

// AdminRoutes: backfill on-demand dari panel admin
func AdminRoutes(r fiber.Router, svc *service.ReconcileService) {
	ctl := controller.NewReconcileController(svc)
	r.Get("/fill-past-alpha", ctl.FillPastAlpha)
}
