package schedule

import (
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	slotsDuration int
	slotsFile     string
	slotsEvents   []string
	slotsJSON     bool
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Find free slots of a given length",
	Long: `Load the day's events and list up to three free slots of the
requested duration within working hours.

Examples:
  dayslot schedule slots --duration 60 --file day.yaml
  dayslot schedule slots -d 45 --event "Lunch@12:00-13:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)

		cmds, err := loadEvents(app, cmd.ErrOrStderr(), slotsFile, slotsEvents)
		if err != nil {
			return err
		}
		if err := addEvents(ctx, app, cmds); err != nil {
			return err
		}

		slots, err := app.FindFreeSlotsHandler.Handle(ctx, queries.FindFreeSlotsQuery{DurationMin: slotsDuration})
		if err != nil {
			return err
		}

		if slotsJSON {
			return writeJSON(cmd.OutOrStdout(), slots)
		}
		renderSlots(cmd.OutOrStdout(), slotsDuration, slots)
		return nil
	},
}

func init() {
	slotsCmd.Flags().IntVarP(&slotsDuration, "duration", "d", 0, "slot length in minutes (required)")
	slotsCmd.Flags().StringVarP(&slotsFile, "file", "f", "", "plan file (.yaml) or calendar (.ics) to load")
	slotsCmd.Flags().StringArrayVarP(&slotsEvents, "event", "e", nil, "event as Title@HH:MM-HH:MM (repeatable)")
	slotsCmd.Flags().BoolVar(&slotsJSON, "json", false, "print the slots as JSON")
	_ = slotsCmd.MarkFlagRequired("duration")
}
