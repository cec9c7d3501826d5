package cli

import (
	"errors"

	analyticsApp "github.com/felixgeelhaar/pytron/internal/analytics/application"
	"github.com/felixgeelhaar/pytron/internal/app"
	backupApp "github.com/felixgeelhaar/pytron/internal/backup/application"
	badgesApp "github.com/felixgeelhaar/pytron/internal/badges/application"
	goalsApp "github.com/felixgeelhaar/pytron/internal/goals/application"
	notificationsApp "github.com/felixgeelhaar/pytron/internal/notifications/application"
	pomodoroApp "github.com/felixgeelhaar/pytron/internal/pomodoro/application"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
)

// ErrNotInitialized is returned by commands run without a wired App.
var ErrNotInitialized = errors.New("application not initialized - storage unavailable")

// App holds the CLI application dependencies.
type App struct {
	Tracking      *trackingApp.Service
	Analytics     *analyticsApp.Service
	Badges        *badgesApp.Service
	Goals         *goalsApp.Service
	Pomodoro      *pomodoroApp.Timer
	Notifications *notificationsApp.Service
	Backup        *backupApp.Service

	// Container is set when the App was built from a full container. Long
	// running commands use it to start background work.
	Container *app.Container
}

// NewApp exposes the container's services to the commands.
func NewApp(c *app.Container) *App {
	return &App{
		Tracking:      c.Tracking,
		Analytics:     c.Analytics,
		Badges:        c.Badges,
		Goals:         c.Goals,
		Pomodoro:      c.Pomodoro,
		Notifications: c.Notifications,
		Backup:        c.Backup,
		Container:     c,
	}
}

var currentApp *App

// SetApp sets the CLI application.
func SetApp(a *App) {
	currentApp = a
}

// GetApp returns the CLI application.
func GetApp() *App {
	return currentApp
}

// RequireApp returns the CLI application or ErrNotInitialized.
func RequireApp() (*App, error) {
	if currentApp == nil {
		return nil, ErrNotInitialized
	}
	return currentApp, nil
}
