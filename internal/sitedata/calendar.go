package sitedata

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Interval is a [Start, End) range of time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ComputeBlocks groups intervals into blocks of back-to-back or overlapping
// intervals. A gap longer than leeway between the end of everything seen so
// far and the start of the next interval starts a new block. Blocks are in
// start order, as are the intervals within them.
func ComputeBlocks(intervals []Interval, leeway time.Duration) [][]Interval {
	if len(intervals) < 1 {
		return nil
	}
	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	now := sorted[0].End
	var blocks [][]Interval
	var block []Interval
	for _, interval := range sorted {
		if interval.Start.Sub(now.Add(leeway)) > 0 {
			blocks = append(blocks, block)
			block = []Interval{interval}
		} else {
			block = append(block, interval)
		}
		if interval.End.After(now) {
			now = interval.End
		}
	}
	if len(block) > 0 {
		blocks = append(blocks, block)
	}
	return blocks
}

// span returns the interval covering every interval in the block.
func span(block []Interval) Interval {
	res := block[0]
	for _, interval := range block[1:] {
		if interval.Start.Before(res.Start) {
			res.Start = interval.Start
		}
		if interval.End.After(res.End) {
			res.End = interval.End
		}
	}
	return res
}

// calendarClass returns the CSS class the schedule uses for events of the
// passed type.
func calendarClass(eventType string) string {
	switch eventType {
	case TypePlenary:
		return "calendar-event-plenary"
	case TypeTutorials:
		return "calendar-event-tutorial"
	case TypeWorkshops:
		return "calendar-event-workshops"
	case TypePaperSessions:
		return "calendar-event-paper-sessions"
	case TypeSocials:
		return "calendar-event-socials"
	case TypeSponsors:
		return "calendar-event-sponsors"
	default:
		return "calendar-event-other"
	}
}

// sessionListingURL returns the page listing sessions of the passed type.
// Only sessions.html has a tab per session day, so only its links open a
// tab.
func sessionListingURL(sessionType, tab string) string {
	switch sessionType {
	case TypePlenary:
		return "plenary_sessions.html"
	case TypeWorkshops:
		return "workshops.html"
	case TypeTutorials:
		return "tutorials.html"
	case TypeSocials:
		return "socials.html"
	case TypeSponsors:
		return "sponsors.html"
	default:
		return "sessions.html#" + tab
	}
}

type calendarBuilder struct {
	events []CalendarEvent
}

func (c *calendarBuilder) add(event CalendarEvent) {
	event.Category = "time"
	event.ClassNames = []string{calendarClass(event.Type), "calendar-event"}
	c.events = append(c.events, event)
}

// addScheduled adds a day view event for every slot, and a week view event
// for every block of slots.
func (c *calendarBuilder) addScheduled(eventType, weekTitle, weekURL string, items []scheduled) {
	var intervals []Interval
	for _, item := range items {
		for _, info := range item.sessions {
			if info.Start.IsZero() || info.End.IsZero() {
				continue
			}
			c.add(CalendarEvent{
				Title: item.title,
				Start: info.Start,
				End:   info.End,
				URL:   item.url,
				Type:  eventType,
				View:  "day",
			})
			intervals = append(intervals, Interval{Start: info.Start, End: info.End})
		}
	}
	for _, block := range ComputeBlocks(intervals, 0) {
		covered := span(block)
		c.add(CalendarEvent{
			Title: weekTitle,
			Start: covered.Start,
			End:   covered.End,
			URL:   weekURL,
			Type:  eventType,
			View:  "week",
		})
	}
}

type scheduled struct {
	title    string
	url      string
	sessions []SessionInfo
}

// buildCalendar builds the schedule page's calendar from every scheduled
// record of the site.
func buildCalendar(site *Site) []CalendarEvent {
	var cal calendarBuilder

	plenaries := make([]scheduled, 0, len(site.PlenarySessions))
	for _, plenary := range site.PlenarySessions {
		plenaries = append(plenaries, scheduled{
			title:    "<b>" + plenary.Title + "</b>",
			url:      fmt.Sprintf("plenary_session_%s.html", plenary.ID),
			sessions: plenary.Sessions,
		})
	}
	cal.addScheduled(TypePlenary, "Plenary Session", "plenary_sessions.html", plenaries)

	tutorials := make([]scheduled, 0, len(site.Tutorials))
	for _, tutorial := range site.Tutorials {
		tutorials = append(tutorials, scheduled{
			title:    fmt.Sprintf("<b>%s: %s</b>", tutorial.ID, tutorial.Title),
			url:      fmt.Sprintf("tutorial_%s.html", tutorial.ID),
			sessions: tutorial.Sessions,
		})
	}
	cal.addScheduled(TypeTutorials, "Tutorials", "tutorials.html", tutorials)

	workshops := make([]scheduled, 0, len(site.Workshops))
	for _, workshop := range site.Workshops {
		workshops = append(workshops, scheduled{
			title:    "<b>" + workshop.Title + "</b>",
			url:      fmt.Sprintf("workshop_%s.html", workshop.ID),
			sessions: workshop.Sessions,
		})
	}
	cal.addScheduled(TypeWorkshops, "Workshops", "workshops.html", workshops)

	socials := make([]scheduled, 0, len(site.Socials))
	for _, social := range site.Socials {
		socials = append(socials, scheduled{
			title:    "<b>" + social.Name + "</b>",
			url:      "socials.html#" + social.ID,
			sessions: social.Sessions,
		})
	}
	cal.addScheduled(TypeSocials, "Socials", "socials.html", socials)

	for _, session := range site.Sessions {
		if session.Start.IsZero() || session.End.IsZero() {
			continue
		}
		cal.add(CalendarEvent{
			Title: session.Name,
			Start: session.Start,
			End:   session.End,
			URL:   sessionListingURL(session.Type, tabID(session.Day())),
			Type:  session.Type,
			View:  "week",
		})
		// one day view entry per track, however many events the track
		// has in the session
		type trackKey struct {
			track string
			start time.Time
		}
		seen := map[trackKey]struct{}{}
		for _, event := range session.Events {
			key := trackKey{track: event.Track, start: event.Start}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			cal.add(CalendarEvent{
				Title: "<b>" + event.Track + "</b>",
				Start: session.Start,
				End:   session.End,
				URL:   fmt.Sprintf("papers.html?session=%s&program=all", session.ID),
				Type:  session.Type,
				View:  "day",
			})
		}
	}

	slices.SortStableFunc(cal.events, func(a, b CalendarEvent) int {
		return cmp.Or(
			a.Start.Compare(b.Start),
			cmp.Compare(a.View, b.View),
			cmp.Compare(a.Title, b.Title),
		)
	})
	return cal.events
}

// buildSessionDays returns a tab for every day with a session, in date
// order, with the first one active.
func buildSessionDays(sessions []*Session) ([]Day, map[string][]*Session) {
	byDay := map[string][]*Session{}
	var starts []time.Time
	for _, session := range sessions {
		if session.Start.IsZero() {
			continue
		}
		label := session.Day()
		if _, ok := byDay[label]; !ok {
			starts = append(starts, session.Start)
		}
		byDay[label] = append(byDay[label], session)
	}
	slices.SortFunc(starts, func(a, b time.Time) int {
		return a.Compare(b)
	})
	days := make([]Day, 0, len(starts))
	for pos, start := range starts {
		label := start.UTC().Format("Jan 02")
		days = append(days, Day{TabID: tabID(label), Label: label, Active: pos == 0})
	}
	for label := range byDay {
		slices.SortStableFunc(byDay[label], func(a, b *Session) int {
			return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.Name, b.Name))
		})
	}
	return days, byDay
}
