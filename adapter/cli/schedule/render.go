package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
)

func renderSchedule(w io.Writer, schedule *queries.ScheduleDTO) {
	fmt.Fprintf(w, "Schedule (working hours %s-%s)\n", schedule.WorkStart, schedule.WorkEnd)
	fmt.Fprintln(w, strings.Repeat("=", 40))

	if len(schedule.Events) == 0 {
		fmt.Fprintln(w, "  No events scheduled.")
		return
	}

	for _, e := range schedule.Events {
		fmt.Fprintf(w, "  %s\n", e.Title)
		fmt.Fprintf(w, "    From: %s To: %s (%s)\n", e.Start, e.End, formatMinutes(e.DurationMin))
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  %d event(s), %s scheduled\n", len(schedule.Events), formatMinutes(schedule.TotalScheduledMins))
}

func renderConflicts(w io.Writer, conflicts []queries.ConflictDTO) {
	if len(conflicts) == 0 {
		fmt.Fprintln(w, "No scheduling conflicts detected.")
		return
	}

	for i, c := range conflicts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "Conflict between:")
		fmt.Fprintf(w, "  %q (%s - %s)\n", c.First.Title, c.First.Start, c.First.End)
		fmt.Fprintf(w, "  %q (%s - %s)\n", c.Second.Title, c.Second.Start, c.Second.End)

		if len(c.Suggestions) == 0 {
			fmt.Fprintf(w, "  No free slot of %s within working hours.\n", formatMinutes(c.Second.DurationMin))
			continue
		}
		fmt.Fprintf(w, "  Suggested times for %q:\n", c.Second.Title)
		for _, s := range c.Suggestions {
			fmt.Fprintf(w, "    From: %s To: %s\n", s.Start, s.End)
		}
	}
}

func renderSlots(w io.Writer, durationMin int, slots []queries.SlotDTO) {
	if len(slots) == 0 {
		fmt.Fprintf(w, "No free slot of %s within working hours.\n", formatMinutes(durationMin))
		return
	}
	fmt.Fprintf(w, "Free slots for %s:\n", formatMinutes(durationMin))
	for _, s := range slots {
		fmt.Fprintf(w, "  From: %s To: %s\n", s.Start, s.End)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
