package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-tidyhome/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect  *widget.Select
	remindEntry *widget.Entry
	entryPort   *NumericalEntry
	modeSelect  *widget.Select
	urlEntry    *widget.Entry
	userEntry   *widget.Entry
	passEntry   *widget.Entry
	pathEntry   *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *TidyHomeApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- 1. General Section (Language, Reminder Time & Feed Port) ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// Reminder time: empty disables the daily notification.
	sw.remindEntry = widget.NewEntry()
	sw.remindEntry.SetText(app.Tracker.RemindAt())
	sw.remindEntry.PlaceHolder = config.PlaceholderTime
	sw.remindEntry.Validator = func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := time.Parse(config.TimeFormatHHMM, s); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrTimeFmt))
		}
		return nil
	}

	// Port: Numerical only, but requires strict Validation (Range 1-65535).
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefFeedPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemRemind := widget.NewFormItem(app.GetMsg(config.TKeyLblRemindAt), sw.remindEntry)
	itemRemind.HintText = app.GetMsg(config.TKeyHelpRemindAt)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemRemind, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. People Source Section ---
	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// --- 3. Backup Section ---
	backupCard := app.buildBackupCard(w)

	// --- Actions ---
	saveAction := func() {
		// The port and reminder time block saving when invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := sw.remindEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Assembly
	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		sourceCard,
		backupCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	// Logic to resize window based on content
	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	// Initial layout calculation
	refreshLayout()
	w.Show()
}

// buildSourceCard constructs the people-source selection UI.
func (app *TidyHomeApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	// Web Form
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)

	webForm := widget.NewForm(itemURL, itemUser, itemPass)

	// Local Form
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	modeOff := app.GetMsg(config.TKeyModeOff)
	modeWeb := app.GetMsg(config.TKeyModeCardDAV)
	modeLocal := app.GetMsg(config.TKeyModeLocal)

	sw.modeSelect = widget.NewSelect([]string{modeOff, modeWeb, modeLocal}, nil)

	// Dynamic visibility based on mode
	updateVis := func(mode string) {
		switch mode {
		case modeLocal:
			webForm.Hide()
			localForm.Show()
		case modeWeb:
			webForm.Show()
			localForm.Hide()
		default:
			webForm.Hide()
			localForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis

	// Set initial state
	switch app.Preferences.String(config.PrefSourceMode) {
	case config.SourceModeLocal:
		sw.modeSelect.SetSelected(modeLocal)
	case config.SourceModeWeb:
		sw.modeSelect.SetSelected(modeWeb)
	default:
		sw.modeSelect.SetSelected(modeOff)
	}
	updateVis(sw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// buildBackupCard constructs the export/import UI.
func (app *TidyHomeApp) buildBackupCard(w fyne.Window) *widget.Card {
	exportBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DownloadIcon(), func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()

			data, err := app.Tracker.Export()
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if _, err := writer.Write(data); err != nil {
				dialog.ShowError(err, w)
				return
			}
			app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifExportOK)))
		}, w)
		d.SetFileName(config.ExportFileName)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtJSON}))
		d.Show()
	})

	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.UploadIcon(), func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()

			data, err := io.ReadAll(reader)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			// A rejected payload leaves the current household untouched.
			if err := app.Tracker.Import(data); err != nil {
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyNotifImportErr)), w)
				return
			}
			app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifImportOK)))
			app.refreshHousehold()
			app.RefreshAll()
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtJSON}))
		d.Show()
	})

	row := container.NewGridWithColumns(config.LayoutColumnsDouble, exportBtn, importBtn)
	return widget.NewCard(app.GetMsg(config.TKeyLblBackup), "", row)
}

// saveSettings persists the data and re-arms the reminder.
func (app *TidyHomeApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	// Helper to map UI strings back to config constants
	modeMap := map[string]string{
		app.GetMsg(config.TKeyModeOff):     config.SourceModeOff,
		app.GetMsg(config.TKeyModeCardDAV): config.SourceModeWeb,
		app.GetMsg(config.TKeyModeLocal):   config.SourceModeLocal,
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Port
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefFeedPort, sw.entryPort.Text)
	}

	// Reminder time lives in the document, not in preferences, so it travels
	// with export/import.
	if err := app.Tracker.SetRemindAt(sw.remindEntry.Text); err != nil {
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrTimeFmt)), w)
		return
	}
	app.armReminder()

	// Trigger system-wide updates
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.RefreshAll()

	w.Close()
}
