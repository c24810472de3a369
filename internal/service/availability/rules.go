package availability

import (
	"sort"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/interval"
	"github.com/salonhq/booking-engine/pkg/localtime"
)

// localSpan рабочий интервал в минутах от местной полуночи
type localSpan struct {
	startMin int
	endMin   int
}

// WorkingIntervals разворачивает правила расписания в абсолютные UTC
// интервалы для каждой даты, покрываемой окном. Правила одного дня недели
// могут пересекаться (сплит-смены) - они сливаются в местных минутах до
// преобразования в UTC, чтобы переходы DST не расщепляли смену.
// Чистая функция, без I/O.
func WorkingIntervals(schedule *domain.Schedule, loc *time.Location, window interval.Interval) ([]interval.Interval, error) {
	intervals := make([]interval.Interval, 0)

	date := localtime.DateOf(window.Start, loc)
	// Последняя дата, начало которой ещё попадает в окно
	lastDate := localtime.DateOf(window.End.Add(-time.Nanosecond), loc)

	for ; !date.After(lastDate); date = date.Next() {
		spans, err := spansForWeekday(schedule.Rules, date.Weekday())
		if err != nil {
			return nil, err
		}

		for _, span := range spans {
			start := localtime.ResolveMinutes(date, span.startMin, loc)
			end := localtime.ResolveMinutes(date, span.endMin, loc)
			if start.Before(end) {
				intervals = append(intervals, interval.New(start, end))
			}
		}
	}

	// Соседние даты могли дать пересекающиеся интервалы на переходе DST
	return interval.Merge(intervals), nil
}

// spansForWeekday собирает и сливает рабочие интервалы правил на день недели
func spansForWeekday(rules []domain.AvailabilityRule, day time.Weekday) ([]localSpan, error) {
	spans := make([]localSpan, 0)

	for i := range rules {
		rule := &rules[i]
		if !rule.AppliesTo(day) {
			continue
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}

		startMin, err := rule.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		endMin, err := rule.EndTime.Minutes()
		if err != nil {
			return nil, err
		}

		spans = append(spans, localSpan{startMin: startMin, endMin: endMin})
	}

	if len(spans) <= 1 {
		return spans, nil
	}

	sort.Slice(spans, func(a, b int) bool {
		return spans[a].startMin < spans[b].startMin
	})

	merged := spans[:1]
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span.startMin <= last.endMin {
			if span.endMin > last.endMin {
				last.endMin = span.endMin
			}
			continue
		}
		merged = append(merged, span)
	}

	return merged, nil
}

// ContainsWindow проверяет, что окно целиком лежит в одном из рабочих
// интервалов
func ContainsWindow(working []interval.Interval, window interval.Interval) bool {
	for _, w := range working {
		if w.Contains(window) {
			return true
		}
	}
	return false
}
