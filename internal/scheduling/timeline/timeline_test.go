package timeline

import (
	"strings"
	"testing"

	"github.com/dabstractor/midnightexpress/pkg/model"
)

func TestBuild(t *testing.T) {
	merged := []model.TimeWindow{
		{Start: 660, End: 945}, // 11:00 AM to 3:45 PM
	}

	tl := Build("2026-09-10", merged)

	if tl.FullyAvailable {
		t.Fatal("day with blocked windows must not be fully available")
	}
	if len(tl.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(tl.Segments))
	}

	seg := tl.Segments[0]
	if seg.Start != "11:00 AM" || seg.End != "3:45 PM" {
		t.Errorf("labels = %q to %q, want 11:00 AM to 3:45 PM", seg.Start, seg.End)
	}
	if seg.Left != "45.83" {
		t.Errorf("Left = %s, want 45.83", seg.Left)
	}
	if seg.Width != "19.79" {
		t.Errorf("Width = %s, want 19.79", seg.Width)
	}
}

func TestBuildEmptyDay(t *testing.T) {
	tl := Build("2026-09-10", nil)
	if !tl.FullyAvailable {
		t.Error("no windows should render the fully-available state")
	}
	if len(tl.Segments) != 0 {
		t.Errorf("segments = %d, want 0", len(tl.Segments))
	}
}

func TestBuildFullDayWindow(t *testing.T) {
	tl := Build("2026-09-10", []model.TimeWindow{{Start: 0, End: 1440}})
	seg := tl.Segments[0]
	if seg.Left != "0.00" || seg.Width != "100.00" {
		t.Errorf("full-day segment = left %s width %s", seg.Left, seg.Width)
	}
	if seg.Start != "12:00 AM" || seg.End != "12:00 AM" {
		t.Errorf("full-day labels = %q to %q", seg.Start, seg.End)
	}
}

func TestRenderHTML(t *testing.T) {
	merged := []model.TimeWindow{
		{Start: 660, End: 945},
		{Start: 1080, End: 1200},
	}

	html, err := RenderHTML("2026-09-10", merged)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	for _, want := range []string{
		`data-date="2026-09-10"`,
		`left: 45.83%`,
		`11:00 AM to 3:45 PM`,
		`6:00 PM to 8:00 PM`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "All day available") {
		t.Error("blocked day must not render the fully-available state")
	}
}

func TestRenderHTMLFullyAvailable(t *testing.T) {
	html, err := RenderHTML("2026-09-10", nil)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(html, "All day available") {
		t.Errorf("empty day should render fully-available state:\n%s", html)
	}
	if strings.Contains(html, "timeline-blocked") {
		t.Error("empty day must not render blocked segments")
	}
}
