package timeline

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/dabstractor/midnightexpress/pkg/model"
)

// DayMinutes is the rendered span of the availability bar.
const DayMinutes = 1440

// Segment is one blocked stretch positioned on the day bar. Left and Width
// are percentages of the day, formatted to two decimals for CSS use.
type Segment struct {
	Label string
	Start string
	End   string
	Left  string
	Width string
}

// Timeline is the renderable availability view for one day.
type Timeline struct {
	Date           string
	FullyAvailable bool
	Segments       []Segment
}

var tmpl = template.Must(template.New("timeline").Parse(`<div class="timeline" data-date="{{.Date}}">
{{- if .FullyAvailable}}
  <div class="timeline-open">All day available</div>
{{- else}}
  <div class="timeline-bar">
{{- range .Segments}}
    <div class="timeline-blocked" style="left: {{.Left}}%; width: {{.Width}}%;" title="{{.Label}}"></div>
{{- end}}
  </div>
  <ul class="timeline-legend">
{{- range .Segments}}
    <li>{{.Label}}</li>
{{- end}}
  </ul>
{{- end}}
</div>
`))

// Build lays merged blocked windows onto the day bar. Windows must already
// be merged and clamped to [0, 1440]; Build does not re-validate them.
func Build(date string, merged []model.TimeWindow) Timeline {
	tl := Timeline{Date: date}
	if len(merged) == 0 {
		tl.FullyAvailable = true
		return tl
	}

	for _, w := range merged {
		start := model.ClockOfDay(w.Start)
		end := model.ClockOfDay(w.End)
		tl.Segments = append(tl.Segments, Segment{
			Label: fmt.Sprintf("%s to %s", start, end),
			Start: start,
			End:   end,
			Left:  pct(w.Start),
			Width: pct(w.End - w.Start),
		})
	}
	return tl
}

// RenderHTML produces the availability fragment for one day.
func RenderHTML(date string, merged []model.TimeWindow) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, Build(date, merged)); err != nil {
		return "", fmt.Errorf("failed to render timeline: %w", err)
	}
	return sb.String(), nil
}

func pct(minutes int) string {
	return fmt.Sprintf("%.2f", float64(minutes)/DayMinutes*100)
}
