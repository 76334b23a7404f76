package app

import (
	"context"
	"math"
	"testing"

	scheduleCommands "github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	schedulingDomain "github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayslot/pkg/config"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.WorkStart = "07:00"
	cfg.WorkEnd = "24:00"
	cfg.Detection = "sweep"
	cfg.SlotStep = 15

	got, err := SchedulerConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "07:00", got.WorkingHours.Start.String())
	assert.Equal(t, schedulingDomain.EndOfDay, got.WorkingHours.End)
	assert.Equal(t, schedulingDomain.DetectionSweep, got.Detection)
	assert.Equal(t, 15, got.SlotStep)
	assert.Equal(t, 3, got.MaxSuggestions)
}

func TestSchedulerConfig_Invalid(t *testing.T) {
	t.Run("working hours reversed", func(t *testing.T) {
		cfg := config.Default()
		cfg.WorkStart, cfg.WorkEnd = "18:00", "08:00"

		_, err := SchedulerConfig(cfg)
		assert.ErrorIs(t, err, schedulingDomain.ErrInvalidWorkingHours)
	})

	t.Run("bad time", func(t *testing.T) {
		cfg := config.Default()
		cfg.WorkStart = "8am"

		_, err := SchedulerConfig(cfg)
		assert.ErrorIs(t, err, schedulingDomain.ErrInvalidTimeFormat)
	})

	t.Run("unknown detection", func(t *testing.T) {
		cfg := config.Default()
		cfg.Detection = "pairwise"

		_, err := SchedulerConfig(cfg)
		assert.ErrorIs(t, err, schedulingDomain.ErrInvalidDetectionMode)
	})
}

func TestNewContainer_SlotStepLongerThanWindow(t *testing.T) {
	cfg := config.Default()
	cfg.SlotStep = math.MaxInt

	_, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())
	assert.ErrorIs(t, err, schedulingDomain.ErrInvalidSlotStep)
}

func TestNewContainer_Workflow(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, config.Default(), observability.DiscardLogger())
	require.NoError(t, err)
	defer c.Close(ctx)

	assert.Equal(t, 2, c.EventBus.Registry().ConsumerCount())

	_, err = c.AddEventHandler.Handle(ctx, scheduleCommands.AddEventCommand{Title: "A", Start: "09:00", End: "10:00"})
	require.NoError(t, err)
	result, err := c.AddEventHandler.Handle(ctx, scheduleCommands.AddEventCommand{Title: "B", Start: "09:30", End: "10:30"})
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)

	schedule, err := c.GetScheduleHandler.Handle(ctx, scheduleQueries.GetScheduleQuery{})
	require.NoError(t, err)
	assert.Len(t, schedule.Events, 2)

	families, err := c.Metrics.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["dayslot_events_added_total"])
	assert.True(t, names["dayslot_conflicts_detected_total"])
	assert.True(t, names["dayslot_suggestions_per_conflict"])
	assert.True(t, names["dayslot_operation_duration_seconds"])
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.WorkEnd = "07:00"

	_, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())

	assert.Error(t, err)
}
