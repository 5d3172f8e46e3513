package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	attModel "tpqku_backend/internals/features/attendance/attendance/model"
	monDTO "tpqku_backend/internals/features/attendance/monitoring/dto"
	classModel "tpqku_backend/internals/features/tpq/classes/model"
	studentModel "tpqku_backend/internals/features/tpq/students/model"

	helper "tpqku_backend/internals/helpers"
	"tpqku_backend/internals/helpers/dbtime"
)

type MonitoringController struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewMonitoringController(db *gorm.DB, loc *time.Location) *MonitoringController {
	return &MonitoringController{DB: db, Loc: loc}
}

func (ctl *MonitoringController) loadRecap(c *fiber.Ctx) (*monDTO.MonthlyRecap, error) {
	now := time.Now().In(ctl.Loc)
	month := c.QueryInt("month", int(now.Month())-1) // 0-indexed
	year := c.QueryInt("year", now.Year())
	if month < 0 || month > 11 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "month harus 0..11 (0 = Januari)")
	}

	classTx := ctl.DB.WithContext(c.UserContext()).Order("class_name ASC")
	studentTx := ctl.DB.WithContext(c.UserContext()).Where("student_class_id IS NOT NULL")

	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "class_id bukan UUID")
		}
		classTx = classTx.Where("class_id = ?", id)
		studentTx = studentTx.Where("student_class_id = ?", id)
	}

	var classes []classModel.ClassModel
	if err := classTx.Find(&classes).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	var students []studentModel.StudentModel
	if err := studentTx.Find(&students).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	start, next := monDTO.MonthBounds(month, year, ctl.Loc)
	var rows []attModel.AttendanceModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("attendance_date >= ? AND attendance_date < ?", dbtime.DateString(start), dbtime.DateString(next)).
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	recap := monDTO.BuildMonthlyRecap(month, year, classes, students, rows)
	return &recap, nil
}

// ===============================
// GET /api/monitoring/attendance?month=&year=&class_id=
// ===============================
func (ctl *MonitoringController) MonthlyAttendance(c *fiber.Ctx) error {
	recap, err := ctl.loadRecap(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", recap)
}

// ===============================
// GET /api/monitoring/attendance/export
// Rekap yang sama, dirender ke workbook .xlsx (satu sheet per kelas)
// ===============================
func (ctl *MonitoringController) ExportMonthlyAttendance(c *fiber.Ctx) error {
	recap, err := ctl.loadRecap(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, cl := range recap.Classes {
		sheet := sanitizeSheetName(cl.ClassName)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
		}

		// header: Nama | tanggal-tanggal aktif | total per status
		_ = f.SetCellValue(sheet, "A1", "Nama Santri")
		for j, d := range recap.Dates {
			col, _ := excelize.ColumnNumberToName(j + 2)
			_ = f.SetCellValue(sheet, col+"1", d)
		}
		statuses := []string{"Hadir", "Sakit", "Izin", "Alpha", "Libur"}
		for j, s := range statuses {
			col, _ := excelize.ColumnNumberToName(len(recap.Dates) + 2 + j)
			_ = f.SetCellValue(sheet, col+"1", "Total "+s)
		}

		for r, st := range cl.Students {
			row := r + 2
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), st.StudentName)
			for j, d := range recap.Dates {
				col, _ := excelize.ColumnNumberToName(j + 2)
				_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), st.Days[d])
			}
			for j, s := range statuses {
				col, _ := excelize.ColumnNumberToName(len(recap.Dates) + 2 + j)
				_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), st.Totals[s])
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	filename := fmt.Sprintf("rekap-absensi-%04d-%02d.xlsx", recap.Year, recap.Month+1)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// Nama sheet Excel: maks 31 char, tanpa karakter terlarang
func sanitizeSheetName(name string) string {
	r := strings.NewReplacer(`\`, "-", `/`, "-", `?`, "-", `*`, "-", `[`, "-", `]`, "-", `:`, "-")
	s := strings.TrimSpace(r.Replace(name))
	if s == "" {
		s = "Kelas"
	}
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}
