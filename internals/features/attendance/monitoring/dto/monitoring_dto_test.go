package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "tpqku_backend/internals/features/attendance/attendance/model"
	classModel "tpqku_backend/internals/features/tpq/classes/model"
	studentModel "tpqku_backend/internals/features/tpq/students/model"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthlyRecap(t *testing.T) {
	classA := classModel.ClassModel{ClassID: uuid.New(), ClassName: "Al-Fatihah"}
	classB := classModel.ClassModel{ClassID: uuid.New(), ClassName: "An-Nas"}

	budi := studentModel.StudentModel{StudentID: uuid.New(), StudentName: "Budi", StudentClassID: &classA.ClassID}
	ani := studentModel.StudentModel{StudentID: uuid.New(), StudentName: "Ani", StudentClassID: &classA.ClassID}
	citra := studentModel.StudentModel{StudentID: uuid.New(), StudentName: "Citra", StudentClassID: &classB.ClassID}
	// belum masuk kelas → tidak ikut rekap
	dara := studentModel.StudentModel{StudentID: uuid.New(), StudentName: "Dara"}

	rows := []attModel.AttendanceModel{
		{AttendanceStudentID: budi.StudentID, AttendanceDate: day(3), AttendanceStatus: "Hadir"},
		{AttendanceStudentID: budi.StudentID, AttendanceDate: day(4), AttendanceStatus: "Alpha"},
		{AttendanceStudentID: ani.StudentID, AttendanceDate: day(3), AttendanceStatus: "Sakit"},
		{AttendanceStudentID: citra.StudentID, AttendanceDate: day(4), AttendanceStatus: "Hadir"},
		{AttendanceStudentID: dara.StudentID, AttendanceDate: day(4), AttendanceStatus: "Hadir"},
	}

	recap := BuildMonthlyRecap(5, 2024,
		[]classModel.ClassModel{classA, classB},
		[]studentModel.StudentModel{budi, ani, citra, dara},
		rows,
	)

	assert.Equal(t, 5, recap.Month)
	assert.Equal(t, 2024, recap.Year)
	assert.Equal(t, []string{"2024-06-03", "2024-06-04"}, recap.Dates)

	require.Len(t, recap.Classes, 2)

	alfatihah := recap.Classes[0]
	assert.Equal(t, "Al-Fatihah", alfatihah.ClassName)
	require.Len(t, alfatihah.Students, 2)
	// urut nama
	assert.Equal(t, "Ani", alfatihah.Students[0].StudentName)
	assert.Equal(t, "Budi", alfatihah.Students[1].StudentName)

	budiRecap := alfatihah.Students[1]
	assert.Equal(t, "Hadir", budiRecap.Days["2024-06-03"])
	assert.Equal(t, "Alpha", budiRecap.Days["2024-06-04"])
	assert.Equal(t, 1, budiRecap.Totals["Hadir"])
	assert.Equal(t, 1, budiRecap.Totals["Alpha"])

	annas := recap.Classes[1]
	require.Len(t, annas.Students, 1)
	assert.Equal(t, "Citra", annas.Students[0].StudentName)

	for _, cl := range recap.Classes {
		for _, st := range cl.Students {
			assert.NotEqual(t, dara.StudentID, st.StudentID, "santri tanpa kelas tidak boleh muncul")
		}
	}
}

func TestBuildMonthlyRecap_EmptyMonth(t *testing.T) {
	recap := BuildMonthlyRecap(5, 2024, nil, nil, nil)
	assert.Empty(t, recap.Dates)
	assert.Empty(t, recap.Classes)
}

func TestMonthBounds(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	start, end := MonthBounds(5, 2024, jakarta)
	assert.Equal(t, "2024-06-01", start.Format("2006-01-02"))
	assert.Equal(t, "2024-07-01", end.Format("2006-01-02"))

	// Desember melewati pergantian tahun
	start, end = MonthBounds(11, 2024, jakarta)
	assert.Equal(t, "2024-12-01", start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-01", end.Format("2006-01-02"))
}
