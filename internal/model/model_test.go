package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		src   any
		want  string
		valid bool
	}{
		{"nil", nil, "", false},
		{"time", time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC), "2024-03-05", true},
		{"text", "2024-03-05", "2024-03-05", true},
		{"bytes", []byte("2024-03-05"), "2024-03-05", true},
		{"timestamp text", "2024-03-05 10:00:00", "2024-03-05", true},
		{"rfc3339", "2024-03-05T00:00:00Z", "2024-03-05", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.valid, d.Valid)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateScanRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, d.Scan("yesterday"))
	assert.Error(t, d.Scan(42))
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Date `json:"a"`
		B Date `json:"b"`
	}{A: NewDate(2023, time.January, 9)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2023-01-09","b":null}`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-01-09"`), &d))
	assert.Equal(t, NewDate(2023, time.January, 9), d)
}

func TestSectionClassification(t *testing.T) {
	motion := CategoryMotion
	statement := CategoryStatement

	assert.True(t, Section{SectionType: TypeOralAnswer}.IsQuestion())
	assert.True(t, Section{SectionType: TypeWrittenAnswerNotOral}.IsQuestion())
	assert.False(t, Section{SectionType: TypeBillIntroduced}.IsQuestion())
	assert.True(t, Section{SectionType: TypeOtherSection, Category: &motion}.IsMotion())
	assert.False(t, Section{SectionType: TypeOtherSection, Category: &statement}.IsMotion())
	assert.False(t, Section{SectionType: TypeOtherSection}.IsMotion())
}

func TestReadingStatusOf(t *testing.T) {
	assert.Equal(t, SecondReading, ReadingStatusOf(true))
	assert.Equal(t, FirstReadingOnly, ReadingStatusOf(false))
}

func TestPageTotalPages(t *testing.T) {
	assert.Equal(t, 1, Page[int]{}.TotalPages(20))
	assert.Equal(t, 1, Page[int]{TotalCount: 20}.TotalPages(20))
	assert.Equal(t, 2, Page[int]{TotalCount: 21}.TotalPages(20))
	assert.Equal(t, 1, Page[int]{TotalCount: 21}.TotalPages(0))
}

func TestAttendanceRate(t *testing.T) {
	assert.Zero(t, Member{}.AttendanceRate())
	assert.InDelta(t, 0.75, Member{AttendanceTotal: 4, AttendancePresent: 3}.AttendanceRate(), 1e-9)
}
