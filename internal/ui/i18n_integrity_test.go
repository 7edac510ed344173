package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-tidyhome/internal/config"
)

var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyMenuRefresh,
	config.TKeyMenuSettings,
	config.TKeyTrayStatus,
	config.TKeyTrayZero,
	config.TKeyTabToday,
	config.TKeyTabUpcoming,
	config.TKeyTabAll,
	config.TKeyTabHousehold,
	config.TKeyPillOverdue,
	config.TKeyPillDueToday,
	config.TKeyPillUpcoming,
	config.TKeyFmtEvery,
	config.TKeyFmtNext,
	config.TKeyFmtStreak,
	config.TKeyFmtPoints,
	config.TKeyEmptyToday,
	config.TKeyEmptyList,
	config.TKeyBtnDone,
	config.TKeyBtnEdit,
	config.TKeyBtnDelete,
	config.TKeyBtnAdd,
	config.TKeyBtnSeed,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyBtnBrowse,
	config.TKeyBtnExport,
	config.TKeyBtnImport,
	config.TKeyBtnSyncPpl,
	config.TKeyConfirmTask,
	config.TKeyLblTitle,
	config.TKeyLblRoom,
	config.TKeyLblPerson,
	config.TKeyLblFrequency,
	config.TKeyLblEveryN,
	config.TKeyLblStart,
	config.TKeyLblUnassigned,
	config.TKeyLblRooms,
	config.TKeyLblPeople,
	config.TKeyLblNewRoom,
	config.TKeyLblNewPerson,
	config.TKeyFreqDaily,
	config.TKeyFreqWeekly,
	config.TKeyFreqBiweekly,
	config.TKeyFreqMonthly,
	config.TKeyFreqCustom,
	config.TKeyLblGeneral,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblRemindAt,
	config.TKeyHelpRemindAt,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblBackup,
	config.TKeyLblSource,
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyModeOff,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblFooter,
	config.TKeyNotifCompleted,
	config.TKeyNotifReminder,
	config.TKeyNotifImportOK,
	config.TKeyNotifImportErr,
	config.TKeyNotifExportOK,
	config.TKeyNotifPeople,
	config.TKeyNotifPeopleErr,
	config.TKeyErrTitleReq,
	config.TKeyErrTimeFmt,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrDateFmt,
	config.TKeyEvtSummary,
	config.TKeyEvtInRoom,
}

func loadLocale(t *testing.T, name string) map[string]interface{} {
	t.Helper()

	// Adjust path if running test from internal/ui or root
	path := filepath.Join("locales", name)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Fallback for running tests from different CWD
		path = filepath.Join("..", "..", "internal", "ui", "locales", name)
		content, err = os.ReadFile(path)
	}
	require.NoErrorf(t, err, "Must load %s", name)

	var jsonMap map[string]interface{}
	err = json.Unmarshal(content, &jsonMap)
	require.NoErrorf(t, err, "%s must be valid JSON", name)
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the locale JSON files.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	jsonMap := loadLocale(t, "active.en.json")

	// Verify consistency
	for key := range definedKeys {
		_, exists := jsonMap[key]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.en.json", key)
	}

	// Check for orphan keys in JSON (keys that exist in JSON but not in Go)
	for jsonKey := range jsonMap {
		if strings.HasPrefix(jsonKey, "_") {
			continue
		}
		_, exists := definedKeys[jsonKey]
		if !exists {
			t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
		}
	}
}

// TestI18nLocalesInSync verifies that every supported locale file carries
// exactly the same key set as the English reference so no language silently
// falls back to raw message IDs.
func TestI18nLocalesInSync(t *testing.T) {
	enMap := loadLocale(t, "active.en.json")
	frMap := loadLocale(t, "active.fr.json")

	for key := range enMap {
		_, exists := frMap[key]
		assert.Truef(t, exists, "Key '%s' present in active.en.json is missing in active.fr.json", key)
	}
	for key := range frMap {
		_, exists := enMap[key]
		assert.Truef(t, exists, "Key '%s' present in active.fr.json is missing in active.en.json", key)
	}
}
