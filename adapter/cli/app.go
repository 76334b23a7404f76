package cli

import (
	internalApp "github.com/felixgeelhaar/dayslot/internal/app"
	scheduleCommands "github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/infrastructure/icalendar"
)

// App holds the CLI application dependencies.
type App struct {
	// Schedule Command Handlers
	AddEventHandler *scheduleCommands.AddEventHandler

	// Schedule Query Handlers
	GetScheduleHandler     *scheduleQueries.GetScheduleHandler
	DetectConflictsHandler *scheduleQueries.DetectConflictsHandler
	FindFreeSlotsHandler   *scheduleQueries.FindFreeSlotsHandler

	// Calendar files
	Importer *icalendar.Importer
	Exporter *icalendar.Exporter
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	addEventHandler *scheduleCommands.AddEventHandler,
	getScheduleHandler *scheduleQueries.GetScheduleHandler,
	detectConflictsHandler *scheduleQueries.DetectConflictsHandler,
	findFreeSlotsHandler *scheduleQueries.FindFreeSlotsHandler,
	importer *icalendar.Importer,
	exporter *icalendar.Exporter,
) *App {
	return &App{
		AddEventHandler:        addEventHandler,
		GetScheduleHandler:     getScheduleHandler,
		DetectConflictsHandler: detectConflictsHandler,
		FindFreeSlotsHandler:   findFreeSlotsHandler,
		Importer:               importer,
		Exporter:               exporter,
	}
}

// NewAppFromContainer creates a CLI application from a wired container.
func NewAppFromContainer(c *internalApp.Container) *App {
	return NewApp(
		c.AddEventHandler,
		c.GetScheduleHandler,
		c.DetectConflictsHandler,
		c.FindFreeSlotsHandler,
		c.Importer,
		c.Exporter,
	)
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
