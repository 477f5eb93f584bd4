package sitedata_test

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"impractical.co/miniconf/internal/sitedata"
)

func at(hour, minute int) time.Time {
	return time.Date(2023, time.July, 10, hour, minute, 0, 0, time.UTC)
}

func TestComputeBlocks(t *testing.T) {
	t.Parallel()

	type testCase struct {
		intervals []sitedata.Interval
		leeway    time.Duration
		want      []int
	}

	tests := map[string]testCase{
		"empty": {},
		"single": {
			intervals: []sitedata.Interval{{Start: at(9, 0), End: at(10, 0)}},
			want:      []int{1},
		},
		"back-to-back": {
			intervals: []sitedata.Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(10, 0), End: at(11, 0)},
			},
			want: []int{2},
		},
		"gap": {
			intervals: []sitedata.Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(10, 30), End: at(11, 0)},
			},
			want: []int{1, 1},
		},
		"gap-within-leeway": {
			intervals: []sitedata.Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(10, 30), End: at(11, 0)},
			},
			leeway: 30 * time.Minute,
			want:   []int{2},
		},
		"contained-then-gap": {
			intervals: []sitedata.Interval{
				{Start: at(13, 0), End: at(14, 0)},
				{Start: at(9, 0), End: at(12, 0)},
				{Start: at(10, 0), End: at(11, 0)},
			},
			want: []int{2, 1},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			blocks := sitedata.ComputeBlocks(test.intervals, test.leeway)
			sizes := make([]int, 0, len(blocks))
			for _, block := range blocks {
				sizes = append(sizes, len(block))
			}
			if len(sizes) == 0 {
				sizes = nil
			}
			if !slices.Equal(sizes, test.want) {
				t.Errorf("expected block sizes %v, got %v", test.want, sizes)
			}
			for _, block := range blocks {
				for pos := 1; pos < len(block); pos++ {
					if block[pos].Start.Before(block[pos-1].Start) {
						t.Errorf("block isn't in start order: %v", block)
					}
				}
			}
		})
	}
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	site := mustLoad(t)

	var summary []string
	for _, event := range site.Calendar {
		if len(event.ClassNames) != 2 || event.ClassNames[1] != "calendar-event" {
			t.Errorf("unexpected class names %v for %q", event.ClassNames, event.Title)
		}
		if event.Category != "time" {
			t.Errorf("unexpected category %q for %q", event.Category, event.Title)
		}
		summary = append(summary, fmt.Sprintf("%s %s %s %s", event.Start.Format("Jan02T15:04"), event.View, event.Title, event.URL))
	}
	want := []string{
		"Jul09T13:00 day <b>T1: Tutorial One</b> tutorial_T1.html",
		"Jul09T13:00 week Tutorials tutorials.html",
		"Jul09T14:30 day <b>T1: Tutorial One</b> tutorial_T1.html",
		"Jul10T13:00 day <b>Two Paths to Intelligence</b> plenary_session_two-paths-to-intelligence.html",
		"Jul10T13:00 week Plenary Session plenary_sessions.html",
		"Jul10T15:00 day <b>Machine Translation</b> papers.html?session=session-1&program=all",
		"Jul10T15:00 week Session 1 sessions.html#tab-jul10",
		"Jul11T13:00 day <b>Large Language Models</b> plenary_session_keynote-2.html",
		"Jul11T13:00 week Plenary Session plenary_sessions.html",
		"Jul11T15:00 week Session 2 sessions.html#tab-jul11",
		"Jul11T20:00 day <b>Lifetime Achievement Award</b> plenary_session_lifetime_achievement_award.html",
		"Jul11T20:00 week Plenary Session plenary_sessions.html",
		"Jul13T13:00 day <b>Workshop One</b> workshop_W1.html",
		"Jul13T13:00 week Workshops workshops.html",
	}
	if !slices.Equal(summary, want) {
		t.Errorf("unexpected calendar:\n got %q\nwant %q", summary, want)
	}

	for _, event := range site.Calendar {
		if event.Type == sitedata.TypePlenary && event.ClassNames[0] != "calendar-event-plenary" {
			t.Errorf("expected plenary class, got %v", event.ClassNames)
		}
	}
}

func TestNameToID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Machine Translation":          "machine-translation",
		"Session 1: NLP Applications":  "session-1_-nlp-applications",
		"already-an-id":                "already-an-id",
		"Dialogue and Interactive Sys": "dialogue-and-interactive-sys",
	}
	for in, want := range tests {
		if got := sitedata.NameToID(in); got != want {
			t.Errorf("NameToID(%q): expected %q, got %q", in, want, got)
		}
	}
}

func ExampleNameToID() {
	fmt.Println(sitedata.NameToID("Theme Track: Reality Check"))
	// Output: theme-track_-reality-check
}

func ExamplePaperChatChannel() {
	fmt.Println(sitedata.PaperChatChannel("2023.acl-long.1"))
	// Output: paper-2023-acl-long-1
}
