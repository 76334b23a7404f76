package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayslot/adapter/cli"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/infrastructure/planfile"
	"github.com/spf13/cobra"
)

var (
	// ErrInvalidEventFlag is returned for an --event value not shaped like Title@HH:MM-HH:MM.
	ErrInvalidEventFlag = errors.New("event must look like Title@HH:MM-HH:MM")
	// ErrUnsupportedFile is returned for a file extension with no reader or writer.
	ErrUnsupportedFile = errors.New("unsupported file type (use .yaml, .yml or .ics)")
	// ErrNoApp is returned when a command runs before the application is wired.
	ErrNoApp = errors.New("schedule commands are not initialized")
)

// ParseEventFlag parses "Title@HH:MM-HH:MM". The title may itself contain '@';
// the last one separates it from the time range.
func ParseEventFlag(value string) (commands.AddEventCommand, error) {
	at := strings.LastIndex(value, "@")
	if at < 0 {
		return commands.AddEventCommand{}, fmt.Errorf("%w: %q", ErrInvalidEventFlag, value)
	}
	start, end, ok := strings.Cut(value[at+1:], "-")
	if !ok {
		return commands.AddEventCommand{}, fmt.Errorf("%w: %q", ErrInvalidEventFlag, value)
	}

	return commands.AddEventCommand{
		Title: strings.TrimSpace(value[:at]),
		Start: strings.TrimSpace(start),
		End:   strings.TrimSpace(end),
	}, nil
}

// loadEvents collects commands from a plan or calendar file followed by
// --event values, in that order.
func loadEvents(app *cli.App, w io.Writer, file string, values []string) ([]commands.AddEventCommand, error) {
	var cmds []commands.AddEventCommand

	if file != "" {
		switch fileKind(file) {
		case "yaml":
			plan, err := planfile.Load(file)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, plan.Commands()...)
		case "ics":
			result, err := app.Importer.ImportFile(file)
			if err != nil {
				return nil, err
			}
			if n := result.SkippedTotal(); n > 0 {
				fmt.Fprintf(w, "Skipped %d calendar event(s) that are all-day, multi-day, cancelled or untimed.\n", n)
			}
			cmds = append(cmds, result.Commands...)
		default:
			return nil, fmt.Errorf("%s: %w", file, ErrUnsupportedFile)
		}
	}

	for _, value := range values {
		cmd, err := ParseEventFlag(value)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

// addEvents submits commands in order and stops at the first rejected one.
func addEvents(ctx context.Context, app *cli.App, cmds []commands.AddEventCommand) error {
	for _, c := range cmds {
		if _, err := app.AddEventHandler.Handle(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// exportSchedule writes the schedule to path, choosing the format by extension.
func exportSchedule(ctx context.Context, app *cli.App, path string, day time.Time) error {
	schedule, err := app.GetScheduleHandler.Handle(ctx, queries.GetScheduleQuery{})
	if err != nil {
		return err
	}

	switch fileKind(path) {
	case "ics":
		conflicts, err := app.DetectConflictsHandler.Handle(ctx, queries.DetectConflictsQuery{})
		if err != nil {
			return err
		}
		return app.Exporter.ExportFile(path, day, schedule, conflicts)
	case "yaml":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := planfile.Encode(f, planfile.FromEvents(schedule.Events)); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}
}

func fileKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".ics", ".ical", ".ifb", ".icalendar":
		return "ics"
	default:
		return ""
	}
}

// parseDay parses an optional YYYY-MM-DD date, defaulting to today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return day, nil
}

func requireApp() (*cli.App, error) {
	app := cli.GetApp()
	if app == nil || app.AddEventHandler == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
