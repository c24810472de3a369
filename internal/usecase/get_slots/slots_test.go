package get_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/interval"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) interval.Interval {
	return interval.New(ts(startHour, startMin), ts(endHour, endMin))
}

func starts(hoursMinutes ...[2]int) []time.Time {
	out := make([]time.Time, 0, len(hoursMinutes))
	for _, hm := range hoursMinutes {
		out = append(out, ts(hm[0], hm[1]))
	}
	return out
}

func TestSlotSequenceBasicGrid(t *testing.T) {
	eventType := &domain.EventType{DurationMinutes: 30, SlotIntervalMinutes: 30}
	free := []interval.Interval{iv(9, 0, 11, 0)}
	window := iv(0, 0, 23, 59)

	got := collectSlots(slotSequence(free, nil, eventType, window, time.Time{}))

	assert.Equal(t, starts([2]int{9, 0}, [2]int{9, 30}, [2]int{10, 0}, [2]int{10, 30}), got)
}

func TestSlotSequenceStepsFromFreeIntervalStart(t *testing.T) {
	// Шаг отсчитывается от начала свободного интервала, не от полуночи:
	// интервал с 09:10 при шаге 30 даёт 09:10, 09:40, ...
	eventType := &domain.EventType{DurationMinutes: 20, SlotIntervalMinutes: 30}
	free := []interval.Interval{iv(9, 10, 10, 30)}
	window := iv(0, 0, 23, 59)

	got := collectSlots(slotSequence(free, nil, eventType, window, time.Time{}))

	assert.Equal(t, starts([2]int{9, 10}, [2]int{9, 40}, [2]int{10, 10}), got)
}

func TestSlotSequenceLastSlotMustFit(t *testing.T) {
	// [t, t+duration) должен целиком помещаться в свободный интервал
	eventType := &domain.EventType{DurationMinutes: 30, SlotIntervalMinutes: 30}
	free := []interval.Interval{iv(9, 0, 10, 15)}
	window := iv(0, 0, 23, 59)

	got := collectSlots(slotSequence(free, nil, eventType, window, time.Time{}))

	// 09:45 не предлагается: заканчивался бы в 10:15, но шаг уже ушёл на 10:00
	assert.Equal(t, starts([2]int{9, 0}, [2]int{9, 30}), got)
}

func TestSlotSequenceMinimumNotice(t *testing.T) {
	eventType := &domain.EventType{DurationMinutes: 30, SlotIntervalMinutes: 30}
	free := []interval.Interval{iv(9, 0, 12, 0)}
	window := iv(0, 0, 23, 59)
	earliest := ts(10, 15)

	got := collectSlots(slotSequence(free, nil, eventType, window, earliest))

	// Слоты раньше earliest отфильтрованы
	assert.Equal(t, starts([2]int{10, 30}, [2]int{11, 0}, [2]int{11, 30}), got)
}

func TestSlotSequenceWindowBounds(t *testing.T) {
	eventType := &domain.EventType{DurationMinutes: 30, SlotIntervalMinutes: 30}
	free := []interval.Interval{iv(9, 0, 17, 0)}
	window := iv(10, 0, 11, 30)

	got := collectSlots(slotSequence(free, nil, eventType, window, time.Time{}))

	// Конец окна исключителен: 11:30 не предлагается
	assert.Equal(t, starts([2]int{10, 0}, [2]int{10, 30}, [2]int{11, 0}), got)
}

func TestSlotSequenceBufferedCandidateAgainstBusy(t *testing.T) {
	// Бронирование 10:00-10:30 с буферами 15 минут блокирует [09:45, 10:45).
	// Кандидаты сравниваются своими эффективными окнами с busy-набором.
	eventType := &domain.EventType{
		DurationMinutes:     30,
		SlotIntervalMinutes: 15,
		BufferBeforeMinutes: 15,
		BufferAfterMinutes:  15,
	}
	busy := []interval.Interval{iv(9, 45, 10, 45)}
	free := interval.Subtract([]interval.Interval{iv(9, 0, 17, 0)}, busy)
	window := iv(0, 0, 23, 59)

	got := collectSlots(slotSequence(free, busy, eventType, window, time.Time{}))

	require.NotEmpty(t, got)

	// 09:00 предлагается: эффективное окно [08:45, 09:45) касается края busy
	assert.Equal(t, ts(9, 0), got[0])

	// 09:15 не предлагается: эффективное окно [09:00, 10:00) пересекает busy
	assert.NotContains(t, got, ts(9, 15))
	// 09:30 не предлагается: [09:30, 10:00) не влезает в свободный интервал
	assert.NotContains(t, got, ts(9, 30))
	// 10:45 не предлагается: эффективное окно [10:30, 11:30) пересекает busy
	assert.NotContains(t, got, ts(10, 45))

	// Первый слот после бронирования - 11:00: эффективное окно [10:45, 11:45)
	// касается края busy и не конфликтует
	require.True(t, len(got) >= 2)
	assert.Equal(t, ts(11, 0), got[1])
}

func TestSlotSequenceTouchingEdgeOfferable(t *testing.T) {
	// Без буферов слот может начинаться ровно в конце busy-интервала
	eventType := &domain.EventType{DurationMinutes: 30, SlotIntervalMinutes: 30}
	busy := []interval.Interval{iv(10, 0, 10, 30)}
	free := interval.Subtract([]interval.Interval{iv(9, 0, 12, 0)}, busy)
	window := iv(0, 0, 23, 59)

	got := collectSlots(slotSequence(free, busy, eventType, window, time.Time{}))

	assert.Equal(t, starts([2]int{9, 0}, [2]int{9, 30}, [2]int{10, 30}, [2]int{11, 0}, [2]int{11, 30}), got)
}

func TestSlotSequenceRestartable(t *testing.T) {
	eventType := &domain.EventType{DurationMinutes: 30, SlotIntervalMinutes: 30}
	free := []interval.Interval{iv(9, 0, 12, 0)}
	window := iv(0, 0, 23, 59)

	seq := slotSequence(free, nil, eventType, window, time.Time{})

	first := collectSlots(seq)
	second := collectSlots(seq)
	assert.Equal(t, first, second)

	// Ранний выход не ломает последовательность
	var head []time.Time
	for t := range seq {
		head = append(head, t)
		if len(head) == 2 {
			break
		}
	}
	assert.Equal(t, first[:2], head)
}

func TestOverlapsAny(t *testing.T) {
	busy := []interval.Interval{iv(9, 0, 10, 0), iv(12, 0, 13, 0), iv(15, 0, 16, 0)}

	assert.True(t, overlapsAny(busy, iv(9, 30, 9, 45)))
	assert.True(t, overlapsAny(busy, iv(12, 30, 15, 30)))
	assert.False(t, overlapsAny(busy, iv(10, 0, 12, 0)))
	assert.False(t, overlapsAny(busy, iv(16, 0, 17, 0)))
	assert.False(t, overlapsAny(nil, iv(9, 0, 10, 0)))
}
