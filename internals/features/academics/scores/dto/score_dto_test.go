package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpqku_backend/internals/features/academics/scores/model"
)

func TestBuildStudentReport_GroupsAndAverages(t *testing.T) {
	studentID := uuid.New()
	rows := []model.ScoreModel{
		{ScoreStudentID: studentID, ScoreSubject: "Tajwid", ScoreValue: 80},
		{ScoreStudentID: studentID, ScoreSubject: "Tajwid", ScoreValue: 90},
		{ScoreStudentID: studentID, ScoreSubject: "Hafalan Juz 30", ScoreValue: 75},
	}

	report := BuildStudentReport(studentID, rows)

	assert.Equal(t, studentID, report.StudentID)
	require.Len(t, report.Subjects, 2)

	// mapel urut abjad
	assert.Equal(t, "Hafalan Juz 30", report.Subjects[0].Subject)
	assert.InDelta(t, 75.0, report.Subjects[0].Average, 0.001)
	assert.Len(t, report.Subjects[0].Items, 1)

	assert.Equal(t, "Tajwid", report.Subjects[1].Subject)
	assert.InDelta(t, 85.0, report.Subjects[1].Average, 0.001)
	assert.Len(t, report.Subjects[1].Items, 2)
}

func TestBuildStudentReport_NoScores(t *testing.T) {
	report := BuildStudentReport(uuid.New(), nil)
	assert.Empty(t, report.Subjects)
}

func TestCreateScoreRequest_ToModel(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	notes := "  lancar  "
	in := CreateScoreRequest{
		ScoreStudentID: uuid.New(),
		ScoreClassID:   uuid.New(),
		ScoreSubject:   " Tajwid ",
		ScoreKind:      "harian",
		ScoreValue:     88.5,
		ScoreDate:      "2024-06-05",
		ScoreNotes:     &notes,
	}

	m, err := in.ToModel(jakarta)
	require.NoError(t, err)
	assert.Equal(t, "Tajwid", m.ScoreSubject)
	assert.Equal(t, 88.5, m.ScoreValue)
	assert.Equal(t, "2024-06-05", m.ScoreDate.Format("2006-01-02"))
	require.NotNil(t, m.ScoreNotes)
	assert.Equal(t, "lancar", *m.ScoreNotes)

	in.ScoreDate = "bukan-tanggal"
	_, err = in.ToModel(jakarta)
	assert.Error(t, err)
}
