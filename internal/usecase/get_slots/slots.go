package get_slots

import (
	"iter"
	"sort"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/interval"
)

// slotSequence возвращает ленивую перезапускаемую последовательность стартов
// слотов по возрастанию. free и busy должны быть упорядоченными
// непересекающимися наборами (выходы interval.Subtract и interval.Merge).
//
// Конвенции:
//   - кандидаты шагают от начала каждого свободного интервала с шагом
//     SlotInterval, не от полуночи;
//   - старт t предлагается, только если [t, t+duration) целиком помещается
//     в свободный интервал, эффективное окно [t-bufferBefore,
//     t+duration+bufferAfter) не пересекает busy-набор (те же полуоткрытые
//     интервалы, что и exclusion constraint хранилища), t не раньше
//     earliest (now + minimum notice) и t лежит в окне запроса.
func slotSequence(free, busy []interval.Interval, eventType *domain.EventType, window interval.Interval, earliest time.Time) iter.Seq[time.Time] {
	duration := eventType.Duration()
	step := eventType.SlotInterval()

	return func(yield func(time.Time) bool) {
		for _, f := range free {
			for t := f.Start; !t.Add(duration).After(f.End); t = t.Add(step) {
				if t.Before(earliest) || t.Before(window.Start) {
					continue
				}
				if !t.Before(window.End) {
					return
				}
				effective := interval.New(t, t.Add(duration)).
					Expand(eventType.BufferBefore(), eventType.BufferAfter())
				if overlapsAny(busy, effective) {
					continue
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// overlapsAny проверяет пересечение iv с упорядоченным непересекающимся
// набором busy
func overlapsAny(busy []interval.Interval, iv interval.Interval) bool {
	// Первый интервал, заканчивающийся позже iv.Start
	i := sort.Search(len(busy), func(k int) bool {
		return busy[k].End.After(iv.Start)
	})
	return i < len(busy) && busy[i].Overlaps(iv)
}

// collectSlots материализует последовательность в слайс
func collectSlots(seq iter.Seq[time.Time]) []time.Time {
	slots := make([]time.Time, 0)
	for t := range seq {
		slots = append(slots, t)
	}
	return slots
}
