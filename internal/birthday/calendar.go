package birthday

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/emersion/go-ical"

	"github.com/jackzampolin/scrapbook/internal/locale"
)

const calendarProdID = "-//jackzampolin//scrapbook//EN"

// Calendar encodes the birthday as an all-day iCalendar event.
func (b *Builder) Calendar() ([]byte, error) {
	now := b.clock.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProdID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	data := map[string]any{
		"Name":    b.cfg.Name,
		"Age":     b.cfg.Age,
		"Creator": b.cfg.Creator,
	}

	hash := sha256.Sum256([]byte(b.cfg.Name + "|" + b.target.Format(DateLayout)))

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%x@scrapbook", hash[:8]))
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetText(ical.PropSummary, b.tr.T(locale.MsgCalendarSummary, data))
	event.Props.SetText(ical.PropDescription, b.tr.T(locale.MsgCalendarDescription, data))

	start := ical.NewProp(ical.PropDateTimeStart)
	start.SetDate(b.target)
	event.Props.Set(start)

	end := ical.NewProp(ical.PropDateTimeEnd)
	end.SetDate(b.target.AddDate(0, 0, 1))
	event.Props.Set(end)

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
