package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Plan a day and review its conflicts",
	Long: `Add events to a single day, list them in start order, see which
neighbouring events overlap and get free slots within working hours.`,
}

func init() {
	Cmd.AddCommand(planCmd)
	Cmd.AddCommand(sessionCmd)
	Cmd.AddCommand(slotsCmd)
}
