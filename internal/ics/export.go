// Package ics serializes the event collection as an iCalendar feed so
// other calendar applications can import it.
package ics

import (
	"io"

	ical "github.com/arran4/golang-ical"

	"github.com/Tiliavir/eventcal/internal/model"
	"github.com/Tiliavir/eventcal/internal/timeutil"
)

const prodID = "-//eventcal//calendar export//EN"

// Calendar builds a VCALENDAR with one all-day VEVENT per stored event.
func Calendar(events []model.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		ve.SetProperty(ical.ComponentPropertyCategories, string(e.Category))

		day := timeutil.StartOfDay(e.Date)
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ve.SetDtStampTime(e.Date)
	}
	return cal
}

// Export writes the collection to w in iCalendar format.
func Export(w io.Writer, events []model.Event) error {
	return Calendar(events).SerializeTo(w)
}
