package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	planFile   string
	planEvents []string
	planExport string
	planDate   string
	planJSON   bool
)

type planOutput struct {
	Schedule  *queries.ScheduleDTO  `json:"schedule"`
	Conflicts []queries.ConflictDTO `json:"conflicts"`
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Add events to the day and report conflicts",
	Long: `Add events from a plan file and/or --event flags in the order given,
then print the day's events sorted by start time and every conflict
with up to three suggested free slots.

Examples:
  dayslot schedule plan --event "Standup@09:00-09:15" --event "Review@09:10-10:00"
  dayslot schedule plan --file day.yaml --export day.ics
  dayslot schedule plan --file calendar.ics --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()

		cmds, err := loadEvents(app, cmd.ErrOrStderr(), planFile, planEvents)
		if err != nil {
			return err
		}
		if len(cmds) == 0 {
			return errors.New("nothing to plan: pass --file or --event")
		}
		if err := addEvents(ctx, app, cmds); err != nil {
			return err
		}

		schedule, err := app.GetScheduleHandler.Handle(ctx, queries.GetScheduleQuery{})
		if err != nil {
			return err
		}
		conflicts, err := app.DetectConflictsHandler.Handle(ctx, queries.DetectConflictsQuery{})
		if err != nil {
			return err
		}

		if planExport != "" {
			day, err := parseDay(planDate)
			if err != nil {
				return err
			}
			if err := exportSchedule(ctx, app, planExport, day); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}

		if planJSON {
			return writeJSON(out, planOutput{Schedule: schedule, Conflicts: conflicts})
		}

		renderSchedule(out, schedule)
		fmt.Fprintln(out)
		renderConflicts(out, conflicts)
		if planExport != "" {
			fmt.Fprintf(out, "\nExported to %s\n", planExport)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "", "plan file (.yaml) or calendar (.ics) to load")
	planCmd.Flags().StringArrayVarP(&planEvents, "event", "e", nil, "event as Title@HH:MM-HH:MM (repeatable)")
	planCmd.Flags().StringVarP(&planExport, "export", "o", "", "write the day to a .ics or .yaml file")
	planCmd.Flags().StringVar(&planDate, "date", "", "calendar date for .ics export (YYYY-MM-DD, default today)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the schedule and conflicts as JSON")
}
