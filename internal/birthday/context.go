package birthday

import (
	"strconv"
	"time"

	"github.com/jackzampolin/scrapbook/internal/locale"
)

// Band is a time-of-day greeting band.
type Band string

const (
	BandNight     Band = "night"
	BandMorning   Band = "morning"
	BandMidday    Band = "midday"
	BandAfternoon Band = "afternoon"
)

// bandRange is a half-open hour interval [From, To).
type bandRange struct {
	From, To int
	Band     Band
}

// bands partitions 0-23. Night wraps midnight, so it appears twice.
var bands = []bandRange{
	{From: 0, To: 4, Band: BandNight},
	{From: 4, To: 11, Band: BandMorning},
	{From: 11, To: 15, Band: BandMidday},
	{From: 15, To: 18, Band: BandAfternoon},
	{From: 18, To: 24, Band: BandNight},
}

// BandForHour returns the greeting band for an hour of the day.
// Hours outside 0-23 are taken modulo 24.
func BandForHour(hour int) Band {
	hour = ((hour % 24) + 24) % 24
	for _, b := range bands {
		if hour >= b.From && hour < b.To {
			return b.Band
		}
	}
	return BandNight
}

// MessageID returns the catalog id of the band's greeting phrase.
func (b Band) MessageID() string {
	switch b {
	case BandMorning:
		return locale.MsgGreetingMorning
	case BandMidday:
		return locale.MsgGreetingMidday
	case BandAfternoon:
		return locale.MsgGreetingAfternoon
	default:
		return locale.MsgGreetingNight
	}
}

// DaysBetween counts calendar days from the date of a to the date of b.
// Both are compared by their own wall-clock dates, so DST shifts never
// produce a fractional day.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

// Context is the derived date information embedded in every system prompt.
// It is recomputed from the clock on each build and never stored.
type Context struct {
	Now       time.Time `json:"now"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Zone      string    `json:"zone"`
	Band      Band      `json:"band"`
	Greeting  string    `json:"greeting"`
	Target    string    `json:"target"`
	DaysUntil int       `json:"days_until"`
	IsToday   bool      `json:"is_today"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
}

// Context derives the current BirthdayContext in the configured time zone.
func (b *Builder) Context() Context {
	now := b.clock.Now().In(b.loc)
	days := DaysBetween(now, b.target)

	zone := b.cfg.ZoneLabel
	if zone == "" {
		zone = now.Format("MST")
	}

	band := BandForHour(now.Hour())
	return Context{
		Now:       now,
		Date:      b.longDate(now),
		Time:      now.Format(b.tr.T(locale.MsgLayoutTime, nil)),
		Zone:      zone,
		Band:      band,
		Greeting:  b.tr.T(band.MessageID(), nil),
		Target:    b.target.Format(DateLayout),
		DaysUntil: days,
		IsToday:   days == 0,
		Name:      b.cfg.Name,
		Age:       b.cfg.Age,
	}
}

// Countdown renders exactly one of the three countdown branches.
func (b *Builder) Countdown(c Context) string {
	data := map[string]any{
		"Name": b.cfg.Name,
		"Age":  b.cfg.Age,
		"Date": b.shortDate(b.target),
	}
	switch {
	case c.IsToday:
		return b.tr.T(locale.MsgCountdownToday, data)
	case c.DaysUntil > 0:
		data["Days"] = c.DaysUntil
		return b.tr.T(locale.MsgCountdownFuture, data)
	default:
		data["Days"] = -c.DaysUntil
		return b.tr.T(locale.MsgCountdownPast, data)
	}
}

func (b *Builder) longDate(t time.Time) string {
	return b.tr.T(locale.MsgLayoutLongDate, map[string]any{
		"Weekday": b.tr.T(weekdayID(t.Weekday()), nil),
		"Day":     t.Day(),
		"Month":   b.tr.T(monthID(t.Month()), nil),
		"Year":    t.Year(),
	})
}

func (b *Builder) shortDate(t time.Time) string {
	return b.tr.T(locale.MsgLayoutDate, map[string]any{
		"Day":   t.Day(),
		"Month": b.tr.T(monthID(t.Month()), nil),
		"Year":  t.Year(),
	})
}

func weekdayID(d time.Weekday) string {
	return "weekday." + strconv.Itoa(int(d))
}

func monthID(m time.Month) string {
	return "month." + strconv.Itoa(int(m))
}
