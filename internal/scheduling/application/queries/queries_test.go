package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/dayslot/internal/shared/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ sharedApplication.QueryHandler[GetScheduleQuery, *ScheduleDTO]      = (*GetScheduleHandler)(nil)
	_ sharedApplication.QueryHandler[DetectConflictsQuery, []ConflictDTO] = (*DetectConflictsHandler)(nil)
	_ sharedApplication.QueryHandler[FindFreeSlotsQuery, []SlotDTO]       = (*FindFreeSlotsHandler)(nil)
)

func newScheduler(t *testing.T, events ...[3]string) *domain.Scheduler {
	t.Helper()
	s, err := domain.NewScheduler(domain.DefaultSchedulerConfig())
	require.NoError(t, err)
	for _, e := range events {
		event, err := domain.ParseEvent(e[0], e[1], e[2])
		require.NoError(t, err)
		_, err = s.AddEvent(event)
		require.NoError(t, err)
	}
	return s
}

func TestGetScheduleHandler(t *testing.T) {
	s := newScheduler(t,
		[3]string{"Review", "13:00", "14:30"},
		[3]string{"Standup", "09:00", "09:15"},
	)

	dto, err := NewGetScheduleHandler(s).Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)

	assert.Equal(t, s.ID(), dto.ID)
	assert.Equal(t, "08:00", dto.WorkStart)
	assert.Equal(t, "18:00", dto.WorkEnd)
	assert.Equal(t, "adjacent", dto.Detection)
	assert.Equal(t, 105, dto.TotalScheduledMins)
	assert.False(t, dto.UpdatedAt.IsZero())
	assert.Equal(t, s.UpdatedAt(), dto.UpdatedAt)
	require.Len(t, dto.Events, 2)
	assert.Equal(t, "Standup", dto.Events[0].Title)
	assert.Equal(t, "09:00", dto.Events[0].Start)
	assert.Equal(t, "09:15", dto.Events[0].End)
	assert.Equal(t, 15, dto.Events[0].DurationMin)
	assert.Equal(t, "Review", dto.Events[1].Title)
}

func TestGetScheduleHandler_Empty(t *testing.T) {
	dto, err := NewGetScheduleHandler(newScheduler(t)).Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)

	assert.NotNil(t, dto.Events)
	assert.Empty(t, dto.Events)
	assert.Zero(t, dto.TotalScheduledMins)
}

func TestDetectConflictsHandler(t *testing.T) {
	s := newScheduler(t,
		[3]string{"A", "09:00", "10:00"},
		[3]string{"B", "09:30", "10:30"},
	)
	handler := NewDetectConflictsHandler(s)

	conflicts, err := handler.Handle(context.Background(), DetectConflictsQuery{})
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, "A", c.First.Title)
	assert.Equal(t, "B", c.Second.Title)
	assert.Equal(t, 30, c.OverlapMin)
	assert.Equal(t, []SlotDTO{
		{Start: "08:00", End: "09:00", DurationMin: 60},
		{Start: "10:30", End: "11:30", DurationMin: 60},
		{Start: "11:00", End: "12:00", DurationMin: 60},
	}, c.Suggestions)

	again, err := handler.Handle(context.Background(), DetectConflictsQuery{})
	require.NoError(t, err)
	assert.Equal(t, conflicts, again)
}

func TestDetectConflictsHandler_NoConflicts(t *testing.T) {
	s := newScheduler(t,
		[3]string{"A", "09:00", "10:00"},
		[3]string{"B", "10:00", "11:00"},
	)

	conflicts, err := NewDetectConflictsHandler(s).Handle(context.Background(), DetectConflictsQuery{})
	require.NoError(t, err)

	assert.Empty(t, conflicts)
}

func TestFindFreeSlotsHandler(t *testing.T) {
	s := newScheduler(t, [3]string{"Focus", "08:00", "12:00"})
	handler := NewFindFreeSlotsHandler(s)

	t.Run("first slots after busy morning", func(t *testing.T) {
		slots, err := handler.Handle(context.Background(), FindFreeSlotsQuery{DurationMin: 90})
		require.NoError(t, err)

		assert.Equal(t, []SlotDTO{
			{Start: "12:00", End: "13:30", DurationMin: 90},
			{Start: "12:30", End: "14:00", DurationMin: 90},
			{Start: "13:00", End: "14:30", DurationMin: 90},
		}, slots)
	})

	t.Run("longer than the window", func(t *testing.T) {
		slots, err := handler.Handle(context.Background(), FindFreeSlotsQuery{DurationMin: 11 * 60})
		require.NoError(t, err)

		assert.Empty(t, slots)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), FindFreeSlotsQuery{DurationMin: 0})

		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})
}
