package pipeline

import (
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDimDates(t *testing.T) {
	t.Parallel()

	roles := []DateRole{
		{Role: "Promised Date", Dates: []time.Time{
			day(2024, time.May, 1),
			{}, // 未解析行不产出
			day(2024, time.March, 15),
			day(2024, time.May, 1), // 同角色同日期去重
		}},
		{Role: "PPAP Date", Dates: []time.Time{
			day(2024, time.May, 1), // 不同角色同日期保留
		}},
	}

	out := BuildDimDates(roles)
	if len(out) != 3 {
		t.Fatalf("expected 3 dim rows, got %d", len(out))
	}

	// 按 role、date 排序
	wantKeys := [][2]string{
		{"PPAP Date", "2024-05-01"},
		{"Promised Date", "2024-03-15"},
		{"Promised Date", "2024-05-01"},
	}
	for i, w := range wantKeys {
		if out[i].Role != w[0] || out[i].Date != w[1] {
			t.Fatalf("row %d = (%s, %s), want (%s, %s)", i, out[i].Role, out[i].Date, w[0], w[1])
		}
	}

	r := out[1] // 2024-03-15 是周五
	if r.Year != 2024 || r.Month != 3 || r.Day != 15 || r.Quarter != 1 {
		t.Fatalf("date parts = %+v", r)
	}
	if r.Week != 11 || r.Weekday != 5 {
		t.Fatalf("week/weekday = %d/%d", r.Week, r.Weekday)
	}
	if r.MonthName != "March" || r.DayName != "Friday" {
		t.Fatalf("names = %s/%s", r.MonthName, r.DayName)
	}
}

func TestBuildDimDatesDeterministic(t *testing.T) {
	t.Parallel()

	roles := []DateRole{
		{Role: "B", Dates: []time.Time{day(2024, time.January, 2), day(2023, time.December, 31)}},
		{Role: "A", Dates: []time.Time{day(2024, time.June, 30)}},
	}
	first := BuildDimDates(roles)
	second := BuildDimDates(roles)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("dim dates not deterministic")
	}
}

func TestBuildDimDatesEmpty(t *testing.T) {
	t.Parallel()

	if out := BuildDimDates(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}
