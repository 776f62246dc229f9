package pipeline

import (
	"sort"
	"time"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// DateRole 某个语义日期列及其解析出的全部日期
type DateRole struct {
	Role  string
	Dates []time.Time
}

// BuildDimDates 生成日期维度：每个出现过的 (date, role) 恰好一行
// 输出按 role、date 排序，同输入重复生成结果逐字节一致
func BuildDimDates(roles []DateRole) []model.DimDate {
	seen := map[string]bool{}
	var out []model.DimDate

	for _, dr := range roles {
		for _, d := range dr.Dates {
			if d.IsZero() {
				continue
			}
			day := d.Format("2006-01-02")
			key := dr.Role + "\x00" + day
			if seen[key] {
				continue
			}
			seen[key] = true

			_, isoWeek := d.ISOWeek()
			out = append(out, model.DimDate{
				Date:      day,
				Role:      dr.Role,
				Year:      d.Year(),
				Month:     int(d.Month()),
				Day:       d.Day(),
				Quarter:   (int(d.Month())-1)/3 + 1,
				Week:      isoWeek,
				Weekday:   int(d.Weekday()),
				MonthName: d.Month().String(),
				DayName:   d.Weekday().String(),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Date < out[j].Date
	})

	return out
}
