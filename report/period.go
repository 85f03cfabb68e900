package report

import (
	"time"

	"pocketledger/ledger"
)

// Period 统计周期
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Range 日期区间 [Start, End)，Start 为零值时表示不限
type Range struct {
	Start time.Time
	End   time.Time
}

// Bounded 区间是否有起止
func (r Range) Bounded() bool {
	return !r.Start.IsZero()
}

// LastDay 区间最后一天（含）
func (r Range) LastDay() time.Time {
	return r.End.AddDate(0, 0, -1)
}

func (r Range) filter(f ledger.TransactionFilter) ledger.TransactionFilter {
	if r.Bounded() {
		start, end := r.Start, r.End
		f.From = &start
		f.To = &end
	}
	return f
}

// dayRange 今天
func dayRange(now time.Time) Range {
	start := ledger.StartOfDay(now)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// weekRange 本周一至本周日
func weekRange(now time.Time) Range {
	today := ledger.StartOfDay(now)
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset)
	return Range{Start: start, End: start.AddDate(0, 0, 7)}
}

// monthRange 自然月
func monthRange(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// yearRange 自然年
func yearRange(now time.Time) Range {
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	return Range{Start: start, End: start.AddDate(1, 0, 0)}
}
