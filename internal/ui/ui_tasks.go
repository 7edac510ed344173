package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-tidyhome/internal/config"
	"github.com/tartampluch/go-tidyhome/internal/engine"
)

// buildMainWindow assembles the main window: badges and actions on top, the
// task buckets and household management below.
func (app *TidyHomeApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()

	app.todayBox = container.NewVBox()
	app.upcomingBox = container.NewVBox()
	app.allBox = container.NewVBox()

	app.streakLabel = widget.NewLabel("")
	app.pointsLabel = widget.NewLabel("")

	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.showTaskDialog(nil)
	})
	addBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyMenuSettings), theme.SettingsIcon(), func() {
		app.ShowSettingsWindow()
	})

	header := container.NewHBox(
		app.streakLabel,
		app.pointsLabel,
		layout.NewSpacer(),
		addBtn,
		settingsBtn,
	)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon(app.GetMsg(config.TKeyTabToday), theme.HomeIcon(), container.NewVScroll(app.todayBox)),
		container.NewTabItem(app.GetMsg(config.TKeyTabUpcoming), container.NewVScroll(app.upcomingBox)),
		container.NewTabItem(app.GetMsg(config.TKeyTabAll), container.NewVScroll(app.allBox)),
		container.NewTabItem(app.GetMsg(config.TKeyTabHousehold), app.buildHouseholdTab()),
	)

	w.SetContent(container.NewBorder(container.NewPadded(header), nil, nil, nil, tabs))

	// Closing the main window keeps the feed server and reminder alive; the
	// tray status item brings it back.
	w.SetCloseIntercept(func() {
		w.Hide()
	})
}

// refreshLists redraws the three task buckets.
func (app *TidyHomeApp) refreshLists(today, upcoming, all []engine.Task) {
	if app.todayBox == nil {
		return
	}

	app.todayBox.Objects = nil
	if len(today) == 0 {
		app.todayBox.Add(app.emptyLabel(config.TKeyEmptyToday))
		if len(all) == 0 {
			seedBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSeed), theme.ContentAddIcon(), func() {
				app.Tracker.SeedExamples()
				app.RefreshAll()
			})
			app.todayBox.Add(container.NewCenter(seedBtn))
		}
	}
	for _, t := range today {
		app.todayBox.Add(app.taskRow(t))
	}
	app.todayBox.Refresh()

	app.upcomingBox.Objects = nil
	if len(upcoming) == 0 {
		app.upcomingBox.Add(app.emptyLabel(config.TKeyEmptyList))
	}
	for _, t := range upcoming {
		app.upcomingBox.Add(app.taskRow(t))
	}
	app.upcomingBox.Refresh()

	app.allBox.Objects = nil
	if len(all) == 0 {
		app.allBox.Add(app.emptyLabel(config.TKeyEmptyList))
	}
	for _, t := range all {
		app.allBox.Add(app.taskRow(t))
	}
	app.allBox.Refresh()
}

// refreshBadges updates the streak and points counters in the header.
func (app *TidyHomeApp) refreshBadges() {
	if app.streakLabel == nil {
		return
	}
	streak := app.Tracker.Streak()
	points := app.Tracker.Points()
	app.streakLabel.SetText(app.GetMsgPlural(config.TKeyFmtStreak, map[string]interface{}{"Days": streak.Days}, streak.Days))
	app.pointsLabel.SetText(app.GetMsgPlural(config.TKeyFmtPoints, map[string]interface{}{"Count": points}, points))
}

func (app *TidyHomeApp) emptyLabel(key string) *widget.Label {
	lbl := widget.NewLabel(app.GetMsg(key))
	lbl.TextStyle = fyne.TextStyle{Italic: true}
	lbl.Alignment = fyne.TextAlignCenter
	return lbl
}

// taskRow renders one chore row: complete button, title with its status pill,
// a meta line, and the edit/delete actions.
func (app *TidyHomeApp) taskRow(t engine.Task) fyne.CanvasObject {
	doneBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDone), theme.ConfirmIcon(), func() {
		if err := app.Tracker.Complete(t.ID); err == nil {
			app.RefreshAll()
		}
	})

	editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		task := t
		app.showTaskDialog(&task)
	})
	editBtn.Importance = widget.LowImportance

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), app.GetMsg(config.TKeyConfirmTask), func(ok bool) {
			if ok {
				app.Tracker.DeleteTask(t.ID)
				app.RefreshAll()
			}
		}, app.Window)
	})
	deleteBtn.Importance = widget.LowImportance

	title := widget.NewLabel(t.Title)
	title.TextStyle = fyne.TextStyle{Bold: true}

	status, days := engine.Classify(t.Due, engine.Today(app.Clock))
	pill := widget.NewLabel(app.statusText(status, days))
	pill.TextStyle = fyne.TextStyle{Italic: true}

	meta := widget.NewLabel(app.taskMeta(t))

	titleRow := container.NewHBox(title, pill)
	body := container.NewVBox(titleRow, meta)
	actions := container.NewHBox(editBtn, deleteBtn)

	return container.NewBorder(nil, widget.NewSeparator(), doneBtn, actions, body)
}

// statusText localizes the status pill next to the task title.
func (app *TidyHomeApp) statusText(status engine.Status, days int) string {
	switch status {
	case engine.StatusOverdue:
		return app.GetMsgPlural(config.TKeyPillOverdue, map[string]interface{}{"Days": days}, days)
	case engine.StatusDueToday:
		return app.GetMsg(config.TKeyPillDueToday)
	default:
		return app.GetMsgPlural(config.TKeyPillUpcoming, map[string]interface{}{"Days": days}, days)
	}
}

// taskMeta builds the secondary line: cadence, next due date, room, person.
func (app *TidyHomeApp) taskMeta(t engine.Task) string {
	interval := engine.IntervalDays(t.Frequency, t.EveryNDays)

	parts := []string{
		app.GetMsgPlural(config.TKeyFmtEvery, map[string]interface{}{"Days": interval}, interval),
		app.GetMsgData(config.TKeyFmtNext, map[string]interface{}{"Date": string(t.Due)}),
	}
	if t.Room != "" {
		parts = append(parts, t.Room)
	}
	if t.Person != "" {
		parts = append(parts, t.Person)
	}
	return strings.Join(parts, "  ·  ")
}

// -----------------------------------------------------------------------------
// Household tab
// -----------------------------------------------------------------------------

func (app *TidyHomeApp) buildHouseholdTab() fyne.CanvasObject {
	app.roomsBox = container.NewVBox()
	app.peopleBox = container.NewVBox()

	roomEntry := widget.NewEntry()
	roomEntry.PlaceHolder = app.GetMsg(config.TKeyLblNewRoom)
	addRoomBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		if app.Tracker.AddRoom(roomEntry.Text) {
			roomEntry.SetText("")
			app.refreshHousehold()
		}
	})
	roomForm := container.NewBorder(nil, nil, nil, addRoomBtn, roomEntry)
	roomsCard := widget.NewCard(app.GetMsg(config.TKeyLblRooms), "",
		container.NewVBox(roomForm, app.roomsBox))

	personEntry := widget.NewEntry()
	personEntry.PlaceHolder = app.GetMsg(config.TKeyLblNewPerson)
	addPersonBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		if app.Tracker.AddPerson(personEntry.Text) {
			personEntry.SetText("")
			app.refreshHousehold()
		}
	})
	personForm := container.NewBorder(nil, nil, nil, addPersonBtn, personEntry)

	syncBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSyncPpl), theme.ViewRefreshIcon(), func() {
		go app.syncPeople()
	})
	peopleCard := widget.NewCard(app.GetMsg(config.TKeyLblPeople), "",
		container.NewVBox(personForm, app.peopleBox, syncBtn))

	app.refreshHousehold()

	return container.NewVScroll(container.NewVBox(roomsCard, peopleCard))
}

// refreshHousehold redraws the room and people lists.
func (app *TidyHomeApp) refreshHousehold() {
	if app.roomsBox == nil {
		return
	}

	app.roomsBox.Objects = nil
	for _, name := range app.Tracker.Rooms() {
		app.roomsBox.Add(app.nameRow(name, app.Tracker.DeleteRoom))
	}
	app.roomsBox.Refresh()

	app.peopleBox.Objects = nil
	for _, name := range app.Tracker.People() {
		app.peopleBox.Add(app.nameRow(name, app.Tracker.DeletePerson))
	}
	app.peopleBox.Refresh()
}

// nameRow renders one list entry with a delete action. Deleting cascades into
// the tasks, so the whole UI refreshes afterwards.
func (app *TidyHomeApp) nameRow(name string, remove func(string)) fyne.CanvasObject {
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		remove(name)
		app.refreshHousehold()
		app.RefreshAll()
	})
	del.Importance = widget.LowImportance
	return container.NewBorder(nil, nil, nil, del, widget.NewLabel(name))
}

// -----------------------------------------------------------------------------
// Add / Edit dialog
// -----------------------------------------------------------------------------

// showTaskDialog opens the create form, or the edit form when task is non-nil.
func (app *TidyHomeApp) showTaskDialog(task *engine.Task) {
	titleEntry := widget.NewEntry()
	titleEntry.PlaceHolder = app.GetMsg(config.TKeyLblTitle)

	unassigned := app.GetMsg(config.TKeyLblUnassigned)
	roomSelect := widget.NewSelect(append([]string{unassigned}, app.Tracker.Rooms()...), nil)
	roomSelect.SetSelected(unassigned)
	personSelect := widget.NewSelect(append([]string{unassigned}, app.Tracker.People()...), nil)
	personSelect.SetSelected(unassigned)

	freqNames := make([]string, len(engine.Frequencies))
	for i, f := range engine.Frequencies {
		freqNames[i] = app.freqLabel(f)
	}
	freqSelect := widget.NewSelect(freqNames, nil)
	freqSelect.SetSelected(app.freqLabel(engine.FreqWeekly))

	everyEntry := NewNumericalEntry()
	everyEntry.SetText(strconv.Itoa(config.DefaultCustomDays))
	everyItem := widget.NewFormItem(app.GetMsg(config.TKeyLblEveryN), everyEntry)

	startEntry := widget.NewEntry()
	startEntry.PlaceHolder = config.PlaceholderDate
	startEntry.Validator = func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := time.Parse(config.DateFormatDay, s); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrDateFmt))
		}
		return nil
	}

	if task != nil {
		titleEntry.SetText(task.Title)
		if task.Room != "" {
			roomSelect.SetSelected(task.Room)
		}
		if task.Person != "" {
			personSelect.SetSelected(task.Person)
		}
		freqSelect.SetSelected(app.freqLabel(task.Frequency))
		if task.EveryNDays > 0 {
			everyEntry.SetText(strconv.Itoa(task.EveryNDays))
		}
		startEntry.SetText(string(task.Start))
	}

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblTitle), titleEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblRoom), roomSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPerson), personSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblFrequency), freqSelect),
		everyItem,
		widget.NewFormItem(app.GetMsg(config.TKeyLblStart), startEntry),
	}

	dlgTitle := app.GetMsg(config.TKeyBtnAdd)
	if task != nil {
		dlgTitle = app.GetMsg(config.TKeyBtnEdit)
	}

	dialog.ShowForm(dlgTitle, app.GetMsg(config.TKeyBtnSave), app.GetMsg(config.TKeyBtnCancel), items,
		func(ok bool) {
			if !ok {
				return
			}

			room := roomSelect.Selected
			if room == unassigned {
				room = ""
			}
			person := personSelect.Selected
			if person == unassigned {
				person = ""
			}
			freq := app.freqFromLabel(freqSelect.Selected)
			everyN, _ := strconv.Atoi(everyEntry.Text)
			start := engine.Day(startEntry.Text)

			var err error
			if task == nil {
				_, err = app.Tracker.AddTask(titleEntry.Text, room, person, freq, everyN, start)
			} else {
				err = app.Tracker.UpdateTask(task.ID, titleEntry.Text, room, person, freq, everyN, start)
			}
			if err != nil {
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrTitleReq)), app.Window)
				return
			}
			app.RefreshAll()
		}, app.Window)
}

// freqLabel maps a frequency to its localized display name.
func (app *TidyHomeApp) freqLabel(f engine.Frequency) string {
	switch f {
	case engine.FreqDaily:
		return app.GetMsg(config.TKeyFreqDaily)
	case engine.FreqBiweekly:
		return app.GetMsg(config.TKeyFreqBiweekly)
	case engine.FreqMonthly:
		return app.GetMsg(config.TKeyFreqMonthly)
	case engine.FreqCustom:
		return app.GetMsg(config.TKeyFreqCustom)
	default:
		return app.GetMsg(config.TKeyFreqWeekly)
	}
}

// freqFromLabel is the inverse mapping; unmatched labels fall back to weekly.
func (app *TidyHomeApp) freqFromLabel(label string) engine.Frequency {
	for _, f := range engine.Frequencies {
		if app.freqLabel(f) == label {
			return f
		}
	}
	return engine.FreqWeekly
}
