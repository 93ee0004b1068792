package window

import (
	"sort"

	"github.com/dabstractor/midnightexpress/pkg/model"
)

// Buffer minutes padded around every reservation's pickup time: the vehicle
// is committed from two hours before the pickup until an hour and
// forty-five minutes after it.
const (
	BufferBefore = 120
	BufferAfter  = 105

	DayMinutes = 1440
)

// For derives the blocked window for a reservation. Start and End are left
// unclamped, so a pickup near midnight produces a window extending outside
// [0, 1440). Windows never cross into another calendar date: blocked time
// notionally spilling past midnight does not block the next day. Accepted
// limitation.
func For(r model.Reservation) model.TimeWindow {
	return model.TimeWindow{
		Start: r.PickupMin - BufferBefore,
		End:   r.PickupMin + BufferAfter,
	}
}

// Conflicts reports whether a candidate pickup time lands inside any
// reservation's blocked window. Bounds are inclusive on both ends. The scan
// is linear over the day's reservations, which number in the tens at most,
// and always checks raw per-reservation windows rather than merged ones.
func Conflicts(candidateMin int, reservations []model.Reservation) bool {
	for _, r := range reservations {
		w := For(r)
		if candidateMin >= w.Start && candidateMin <= w.End {
			return true
		}
	}
	return false
}

// FirstConflict returns the blocked window containing the candidate time,
// for inclusion in the rejection message. The second return is false when
// no window conflicts.
func FirstConflict(candidateMin int, reservations []model.Reservation) (model.TimeWindow, bool) {
	for _, r := range reservations {
		w := For(r)
		if candidateMin >= w.Start && candidateMin <= w.End {
			return w, true
		}
	}
	return model.TimeWindow{}, false
}

// Merge collapses the given windows into a minimal disjoint set, sorted
// ascending by start and clamped to [0, 1440] for rendering. Adjacent
// windows (next start equal to previous end) merge. The result is only for
// display; conflict checks use the raw windows.
func Merge(windows []model.TimeWindow) []model.TimeWindow {
	if len(windows) == 0 {
		return nil
	}

	clamped := make([]model.TimeWindow, 0, len(windows))
	for _, w := range windows {
		clamped = append(clamped, model.TimeWindow{
			Start: clampMinute(w.Start),
			End:   clampMinute(w.End),
		})
	}

	sort.SliceStable(clamped, func(i, j int) bool {
		return clamped[i].Start < clamped[j].Start
	})

	merged := []model.TimeWindow{clamped[0]}
	for _, w := range clamped[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}

	return merged
}

// BlockedWindows derives and merges the windows for a day's reservations.
func BlockedWindows(reservations []model.Reservation) []model.TimeWindow {
	windows := make([]model.TimeWindow, 0, len(reservations))
	for _, r := range reservations {
		windows = append(windows, For(r))
	}
	return Merge(windows)
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > DayMinutes {
		return DayMinutes
	}
	return m
}
