package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-tidyhome/internal/config"
	"github.com/tartampluch/go-tidyhome/internal/engine"
	"github.com/tartampluch/go-tidyhome/internal/remind"
	"github.com/tartampluch/go-tidyhome/internal/server"
	"github.com/tartampluch/go-tidyhome/internal/tracker"
	"github.com/zalando/go-keyring"
)

// TidyHomeApp encapsulates the UI state, preferences, and background logic.
type TidyHomeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Tracker   *tracker.Tracker
	Server    *server.FeedServer
	Scheduler *remind.Scheduler
	Fetcher   engine.VCardFetcher
	Clock     engine.Clock // Injected clock for testability (e.g. mocking midnight rollover)

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	settingsWindow fyne.Window

	// Main window widgets, rebuilt on every refresh pass.
	todayBox    *fyne.Container
	upcomingBox *fyne.Container
	allBox      *fyne.Container
	roomsBox    *fyne.Container
	peopleBox   *fyne.Container
	streakLabel *widget.Label
	pointsLabel *widget.Label
}

// FyneNotifier adapts fyne's notification API to the tracker's Notifier.
type FyneNotifier struct {
	App fyne.App
}

// NewFyneNotifier wraps a fyne application.
func NewFyneNotifier(a fyne.App) *FyneNotifier {
	return &FyneNotifier{App: a}
}

// Notify shows a desktop notification. Best-effort by contract.
func (n *FyneNotifier) Notify(title, body string) {
	n.App.SendNotification(fyne.NewNotification(title, body))
}

// NewTidyHomeApp constructs the application and wires dependencies.
func NewTidyHomeApp(a fyne.App, ctx context.Context, trk *tracker.Tracker, srv *server.FeedServer, sched *remind.Scheduler, fetcher engine.VCardFetcher) *TidyHomeApp {
	return &TidyHomeApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Tracker:            trk,
		Server:             srv,
		Scheduler:          sched,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the application services and the main UI loop.
func (app *TidyHomeApp) Run() {
	app.SetupI18n()
	app.Tracker.FormatCompleted = app.buildCompletedFormatter()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(theme.HomeIcon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupport,
			config.LogKeyComponent, config.CompUI)
	}

	app.buildMainWindow()

	app.Scheduler.Start()
	app.armReminder()

	go app.backgroundWorker()

	app.RefreshAll()
	app.Window.Show()
	app.App.Run()
}

// setupTrayMenu constructs the system tray menu.
func (app *TidyHomeApp) setupTrayMenu() {
	// Status item doubles as a button to bring the main window forward.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		if app.Window != nil {
			app.Window.Show()
			app.Window.RequestFocus()
		}
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		app.RefreshAll()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *TidyHomeApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker re-runs the refresh pass on a fixed cadence so due dates
// roll over past midnight even when the user never touches the app.
func (app *TidyHomeApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	ticker := time.NewTicker(config.UIRefreshInterval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, config.UIRefreshInterval)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			app.RefreshAll()
		}
	}
}

// RefreshAll is the single render pass: it re-buckets the tasks, redraws the
// lists and badges, republishes the calendar feed, and updates the tray.
func (app *TidyHomeApp) RefreshAll() {
	todayTasks, upcoming, all := app.Tracker.Buckets()

	app.refreshLists(todayTasks, upcoming, all)
	app.refreshBadges()
	app.updateTrayStatus(len(todayTasks))

	feed, err := engine.BuildFeed(all, engine.Today(app.Clock), app.Clock.Now(), app.buildEventFormatter())
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Server.Update(feed)
}

// updateTrayStatus updates the top menu item to show how many chores are due.
func (app *TidyHomeApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	if count == 0 {
		label = app.GetMsg(config.TKeyTrayZero)
		if label == config.TKeyTrayZero {
			label = config.FallbackTrayLabel
		}
	} else {
		label = app.GetMsgPlural(config.TKeyTrayStatus, map[string]interface{}{"Count": count}, count)
		if label == config.TKeyTrayStatus {
			label = fmt.Sprintf(config.FallbackTrayDue, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// armReminder reschedules the daily notification from the stored setting.
// Called at startup and whenever the settings window saves a new time.
func (app *TidyHomeApp) armReminder() {
	at := app.Tracker.RemindAt()
	err := app.Scheduler.Reschedule(at, func() {
		count := app.Tracker.DueCount()
		slog.Info(config.MsgReminderFired,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyDueCount, count)

		if count > 0 {
			body := app.GetMsgPlural(config.TKeyNotifReminder, map[string]interface{}{"Count": count}, count)
			if body == config.TKeyNotifReminder {
				body = fmt.Sprintf(config.FormatReminderBody, count)
			}
			app.App.SendNotification(fyne.NewNotification(config.FallbackReminderTitle, body))
		}
		app.RefreshAll()
	})
	if err != nil {
		slog.Warn(config.ErrTimeFormat,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyRemindAt, at,
			config.LogKeyError, err)
	}
}

// loadPeopleSource assembles the import configuration from preferences and Keyring.
func (app *TidyHomeApp) loadPeopleSource() engine.PeopleSource {
	src := engine.PeopleSource{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if src.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, src.WebUser); err == nil {
			src.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, src.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return src
}

// syncPeople runs the vCard import pipeline and merges the results.
func (app *TidyHomeApp) syncPeople() {
	slog.Info(config.MsgPeopleSyncReq, config.LogKeyComponent, config.CompUI)
	start := time.Now()

	importer := &engine.PeopleImporter{Fetcher: app.Fetcher}
	names, err := importer.Import(app.Ctx, app.loadPeopleSource())
	if err != nil {
		slog.Error(config.ErrVCardParse,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifPeopleErr)))
		return
	}

	added := app.Tracker.MergePeople(names)
	slog.Info(config.MsgPeopleSynced,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, added,
		config.LogKeyDuration, time.Since(start).Milliseconds())

	body := app.GetMsgPlural(config.TKeyNotifPeople, map[string]interface{}{"Count": added}, added)
	app.App.SendNotification(fyne.NewNotification(config.AppName, body))
	app.refreshHousehold()
}

// buildCompletedFormatter returns a closure that localizes the completion toast.
func (app *TidyHomeApp) buildCompletedFormatter() func(title string) (string, string) {
	return func(title string) (string, string) {
		body := app.GetMsgData(config.TKeyNotifCompleted, map[string]interface{}{"Title": title})
		if body == config.TKeyNotifCompleted {
			body = fmt.Sprintf(config.FormatCompletedBody, title)
		}
		return config.FallbackCompletedTitle, body
	}
}

// buildEventFormatter returns a closure that localizes the feed event summary.
func (app *TidyHomeApp) buildEventFormatter() func(t engine.Task) string {
	return func(t engine.Task) string {
		var msg string
		if app.Localizer != nil {
			if t.Room != "" {
				msg = app.GetMsgData(config.TKeyEvtInRoom, map[string]interface{}{"Title": t.Title, "Room": t.Room})
				if msg == config.TKeyEvtInRoom {
					msg = ""
				}
			} else {
				msg = app.GetMsgData(config.TKeyEvtSummary, map[string]interface{}{"Title": t.Title})
				if msg == config.TKeyEvtSummary {
					msg = ""
				}
			}
		}

		if msg == "" {
			if t.Room != "" {
				return fmt.Sprintf(config.FallbackEvtInRoom, t.Title, t.Room)
			}
			return fmt.Sprintf(config.FallbackEvtSummary, t.Title)
		}
		return msg
	}
}
