package ledger

import (
	"fmt"
	"time"
)

// Period 年月，所有月度合计与一致性校验都以它为范围
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod 由年、月构造 Period
func NewPeriod(year, month int) Period {
	return Period{Year: year, Month: time.Month(month)}
}

// PeriodOf 返回日期所在的年月
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Valid 月份必须在 1..12 之间
func (p Period) Valid() bool {
	return p.Year >= 1 && p.Year <= 9999 && p.Month >= time.January && p.Month <= time.December
}

// Bounds 返回 [当月第一天, 下月第一天)，统一使用 UTC
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// String 格式为 2006-01
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// NormalizeDate 去掉时分秒，按日期在其自身时区的年月日落到 UTC 零点
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
