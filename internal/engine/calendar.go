package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-tidyhome/internal/config"
)

// BuildFeed renders the chore list as an iCalendar feed, one all-day VEVENT
// per task on its next due date. Calendar apps subscribing to the local feed
// then show the household's chores alongside regular appointments.
//
// summarize lets the UI inject localized event titles; when nil, a plain
// fallback summary is used. Stamp timestamps are converted to UTC for the
// ICS encoding while the due-day logic stays on the local calendar.
func BuildFeed(tasks []Task, today Day, now time.Time, summarize func(t Task) string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval to subscribing clients.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, t := range tasks {
		due := NextDue(t, today)
		dueTime, err := due.Time()
		if err != nil {
			slog.Debug(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyTaskID, t.ID,
				config.LogKeyValue, string(due))
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, t.ID, config.ICalDomain))

		summary := fallbackSummary(t)
		if summarize != nil {
			summary = summarize(t)
		}
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(dueTime)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	// A VCALENDAR with no components is invalid; serve the constant stub so
	// subscribed clients do not flag the feed.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func fallbackSummary(t Task) string {
	if t.Room != "" {
		return fmt.Sprintf(config.FallbackEvtInRoom, t.Title, t.Room)
	}
	return fmt.Sprintf(config.FallbackEvtSummary, t.Title)
}
