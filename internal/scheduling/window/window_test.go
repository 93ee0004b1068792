package window

import (
	"reflect"
	"testing"

	"github.com/dabstractor/midnightexpress/pkg/model"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name      string
		pickupMin int
		want      model.TimeWindow
	}{
		{"midday pickup", 780, model.TimeWindow{Start: 660, End: 885}},
		{"early pickup extends before midnight", 60, model.TimeWindow{Start: -60, End: 165}},
		{"late pickup extends past midnight", 1400, model.TimeWindow{Start: 1280, End: 1505}},
		{"midnight pickup", 0, model.TimeWindow{Start: -120, End: 105}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := For(model.Reservation{Date: "2026-09-10", PickupMin: tt.pickupMin})
			if got != tt.want {
				t.Errorf("For() = %+v, want %+v", got, tt.want)
			}
			if got.End-got.Start != BufferBefore+BufferAfter {
				t.Errorf("window width = %d, want %d", got.End-got.Start, BufferBefore+BufferAfter)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	reservations := []model.Reservation{
		{Date: "2026-09-10", PickupMin: 780}, // blocks [660, 885]
	}

	tests := []struct {
		name      string
		candidate int
		want      bool
	}{
		{"well before window", 300, false},
		{"one minute before start", 659, false},
		{"exactly at start boundary", 660, true},
		{"at the reserved pickup", 780, true},
		{"exactly at end boundary", 885, true},
		{"one minute after end", 886, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Conflicts(tt.candidate, reservations); got != tt.want {
				t.Errorf("Conflicts(%d) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestConflictsUsesUnclampedWindows(t *testing.T) {
	// Pickup at 23:20 blocks through minute 1505, notionally past midnight.
	// A candidate at 1430 (23:50) must still conflict even though the
	// display window is clamped at 1440.
	reservations := []model.Reservation{{Date: "2026-09-10", PickupMin: 1400}}

	if !Conflicts(1430, reservations) {
		t.Error("candidate inside unclamped window should conflict")
	}
}

func TestConflictsEmptyDay(t *testing.T) {
	if Conflicts(780, nil) {
		t.Error("no reservations should never conflict")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		windows []model.TimeWindow
		want    []model.TimeWindow
	}{
		{
			name:    "empty input",
			windows: nil,
			want:    nil,
		},
		{
			name:    "single window clamped",
			windows: []model.TimeWindow{{Start: -60, End: 165}},
			want:    []model.TimeWindow{{Start: 0, End: 165}},
		},
		{
			name: "overlapping windows collapse",
			windows: []model.TimeWindow{
				{Start: 660, End: 885},
				{Start: 700, End: 925},
			},
			want: []model.TimeWindow{{Start: 660, End: 925}},
		},
		{
			name: "adjacent windows merge",
			windows: []model.TimeWindow{
				{Start: 100, End: 200},
				{Start: 200, End: 300},
			},
			want: []model.TimeWindow{{Start: 100, End: 300}},
		},
		{
			name: "disjoint windows stay separate and sorted",
			windows: []model.TimeWindow{
				{Start: 900, End: 1000},
				{Start: 100, End: 200},
			},
			want: []model.TimeWindow{
				{Start: 100, End: 200},
				{Start: 900, End: 1000},
			},
		},
		{
			name: "contained window disappears",
			windows: []model.TimeWindow{
				{Start: 100, End: 500},
				{Start: 200, End: 300},
			},
			want: []model.TimeWindow{{Start: 100, End: 500}},
		},
		{
			name: "late window clamped to end of day",
			windows: []model.TimeWindow{{Start: 1280, End: 1505}},
			want:    []model.TimeWindow{{Start: 1280, End: 1440}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.windows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	windows := []model.TimeWindow{
		{Start: 660, End: 885},
		{Start: 800, End: 1025},
		{Start: 100, End: 200},
	}

	once := Merge(windows)
	twice := Merge(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge not idempotent: first %+v, second %+v", once, twice)
	}
}

func TestMergePreservesCoverage(t *testing.T) {
	windows := []model.TimeWindow{
		{Start: 660, End: 885},
		{Start: 884, End: 1109},
		{Start: 100, End: 325},
	}
	merged := Merge(windows)

	covered := func(set []model.TimeWindow, minute int) bool {
		for _, w := range set {
			if minute >= w.Start && minute <= w.End {
				return true
			}
		}
		return false
	}

	for minute := 0; minute <= DayMinutes; minute++ {
		if covered(windows, minute) != covered(merged, minute) {
			t.Fatalf("coverage differs at minute %d", minute)
		}
	}
}

func TestBlockedWindows(t *testing.T) {
	reservations := []model.Reservation{
		{Date: "2026-09-10", PickupMin: 780},
		{Date: "2026-09-10", PickupMin: 840},
		{Date: "2026-09-10", PickupMin: 60},
	}

	got := BlockedWindows(reservations)
	want := []model.TimeWindow{
		{Start: 0, End: 165},
		{Start: 660, End: 945},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BlockedWindows() = %+v, want %+v", got, want)
	}
}
