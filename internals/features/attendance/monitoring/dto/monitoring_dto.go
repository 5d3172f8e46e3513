package dto

import (
	"sort"
	"time"

	"github.com/google/uuid"

	attModel "tpqku_backend/internals/features/attendance/attendance/model"
	classModel "tpqku_backend/internals/features/tpq/classes/model"
	studentModel "tpqku_backend/internals/features/tpq/students/model"
)

/* =========================================================
   View model rekap bulanan: kelas → santri → status per tanggal
   ========================================================= */

type StudentRecap struct {
	StudentID   uuid.UUID         `json:"student_id"`
	StudentName string            `json:"student_name"`
	Days        map[string]string `json:"days"`   // "2006-01-02" → status
	Totals      map[string]int    `json:"totals"` // status → jumlah
}

type ClassRecap struct {
	ClassID   uuid.UUID      `json:"class_id"`
	ClassName string         `json:"class_name"`
	Students  []StudentRecap `json:"students"`
}

type MonthlyRecap struct {
	Month   int          `json:"month"` // 0-indexed
	Year    int          `json:"year"`
	Dates   []string     `json:"dates"` // tanggal yang punya ≥1 catatan, urut naik
	Classes []ClassRecap `json:"classes"`
}

// BuildMonthlyRecap mereduksi baris absensi satu bulan menjadi view model
// bersarang. Satu lintasan atas rows; santri tanpa kelas tidak ikut.
func BuildMonthlyRecap(
	month0, year int,
	classes []classModel.ClassModel,
	students []studentModel.StudentModel,
	rows []attModel.AttendanceModel,
) MonthlyRecap {
	recap := MonthlyRecap{Month: month0, Year: year, Dates: []string{}, Classes: []ClassRecap{}}

	// status per (santri, tanggal) + kumpulan tanggal aktif
	byStudent := make(map[uuid.UUID]map[string]string, len(students))
	dateSet := map[string]struct{}{}
	for _, r := range rows {
		d := r.AttendanceDate.Format("2006-01-02")
		dateSet[d] = struct{}{}
		m, ok := byStudent[r.AttendanceStudentID]
		if !ok {
			m = map[string]string{}
			byStudent[r.AttendanceStudentID] = m
		}
		m[d] = r.AttendanceStatus
	}
	for d := range dateSet {
		recap.Dates = append(recap.Dates, d)
	}
	sort.Strings(recap.Dates)

	// santri dikelompokkan per kelas
	byClass := make(map[uuid.UUID][]StudentRecap, len(classes))
	for _, st := range students {
		if st.StudentClassID == nil {
			continue
		}
		sr := StudentRecap{
			StudentID:   st.StudentID,
			StudentName: st.StudentName,
			Days:        map[string]string{},
			Totals:      map[string]int{},
		}
		for d, status := range byStudent[st.StudentID] {
			sr.Days[d] = status
			sr.Totals[status]++
		}
		byClass[*st.StudentClassID] = append(byClass[*st.StudentClassID], sr)
	}

	for _, cl := range classes {
		list := byClass[cl.ClassID]
		sort.Slice(list, func(i, j int) bool { return list[i].StudentName < list[j].StudentName })
		recap.Classes = append(recap.Classes, ClassRecap{
			ClassID:   cl.ClassID,
			ClassName: cl.ClassName,
			Students:  list,
		})
	}
	return recap
}

// MonthBounds: [awal bulan, awal bulan berikutnya) untuk filter query.
func MonthBounds(month0, year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
