package schedule

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/dayslot/adapter/cli"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var sessionDate string

// errQuit ends a session.
var errQuit = errors.New("quit")

const sessionHelp = `Commands:
  add <start> <end> <title>   add an event, e.g. add 09:00 10:00 Team sync
  list                        show the day's events in start order
  conflicts                   show overlapping events and suggested times
  slots <minutes>             find free slots of the given length
  export <path>               write the day to a .ics or .yaml file
  help                        show this help
  quit                        leave the session`

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Plan a day interactively",
	Long: `Start an interactive session. Each added event is inserted into the
day in start order and the events and conflicts are shown again.

Type "help" inside the session for the available commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		s := &session{
			app: app,
			in:  bufio.NewScanner(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		return s.run(commandContext(cmd))
	},
}

func init() {
	sessionCmd.Flags().StringVar(&sessionDate, "date", "", "calendar date for .ics export (YYYY-MM-DD, default today)")
}

type session struct {
	app *cli.App
	in  *bufio.Scanner
	out io.Writer
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, `Dayslot session. Type "help" for commands.`)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		err := s.exec(ctx, strings.TrimSpace(s.in.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

func (s *session) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "add":
		if len(fields) < 3 {
			return fmt.Errorf("usage: add <start> <end> <title>")
		}
		return s.add(ctx, commands.AddEventCommand{
			Title: strings.Join(fields[3:], " "),
			Start: fields[1],
			End:   fields[2],
		})
	case "list":
		schedule, err := s.app.GetScheduleHandler.Handle(ctx, queries.GetScheduleQuery{})
		if err != nil {
			return err
		}
		renderSchedule(s.out, schedule)
	case "conflicts":
		conflicts, err := s.app.DetectConflictsHandler.Handle(ctx, queries.DetectConflictsQuery{})
		if err != nil {
			return err
		}
		renderConflicts(s.out, conflicts)
	case "slots":
		if len(fields) != 2 {
			return fmt.Errorf("usage: slots <minutes>")
		}
		minutes, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", fields[1], err)
		}
		slots, err := s.app.FindFreeSlotsHandler.Handle(ctx, queries.FindFreeSlotsQuery{DurationMin: minutes})
		if err != nil {
			return err
		}
		renderSlots(s.out, minutes, slots)
	case "export":
		if len(fields) != 2 {
			return fmt.Errorf("usage: export <path>")
		}
		day, err := parseDay(sessionDate)
		if err != nil {
			return err
		}
		if err := exportSchedule(ctx, s.app, fields[1], day); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Exported to %s\n", fields[1])
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (type \"help\")", fields[0])
	}
	return nil
}

func (s *session) add(ctx context.Context, cmd commands.AddEventCommand) error {
	result, err := s.app.AddEventHandler.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %q (%s - %s)\n\n", result.Event.Title, result.Event.Start, result.Event.End)

	schedule, err := s.app.GetScheduleHandler.Handle(ctx, queries.GetScheduleQuery{})
	if err != nil {
		return err
	}
	renderSchedule(s.out, schedule)
	fmt.Fprintln(s.out)
	renderConflicts(s.out, result.Conflicts)
	return nil
}
