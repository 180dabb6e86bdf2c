package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLecturerShort_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   LecturerShort
		want string
	}{
		{name: "полное", in: LecturerShort{Name: "Тарас", Surname: "Шевченко", Patronymic: "Григорович"}, want: "Шевченко Т. Г."},
		{name: "без отчества", in: LecturerShort{Name: "Ada", Surname: "Lovelace"}, want: "Lovelace A."},
		{name: "только фамилия", in: LecturerShort{Surname: "Франко"}, want: "Франко"},
		{name: "пусто", in: LecturerShort{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.DisplayName())
		})
	}
}

func TestDateTuple_Contains(t *testing.T) {
	start := NewDateTuple(2024, 1, 10)
	end := NewDateTuple(2024, 2, 5)

	assert.True(t, start.Contains(end, start))
	assert.True(t, start.Contains(end, end))
	assert.True(t, start.Contains(end, NewDateTuple(2024, 1, 31)))
	assert.False(t, start.Contains(end, NewDateTuple(2024, 1, 9)))
	assert.False(t, start.Contains(end, NewDateTuple(2024, 2, 6)))
}

func TestWeekSync_JSONArray(t *testing.T) {
	data, err := WeekSync{Year: 2024, Week: 36, WeekNumber: 2}.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `[2024,36,2]`, string(data))

	var w WeekSync
	assert.NoError(t, w.UnmarshalJSON([]byte(`[2023,1,1]`)))
	assert.Equal(t, WeekSync{Year: 2023, Week: 1, WeekNumber: 1}, w)
}
