package pages

import (
	"context"

	"impractical.co/miniconf/internal/render"
	"impractical.co/miniconf/internal/sitedata"
)

// IndexPage is the landing page.
type IndexPage struct {
	Frame Frame
}

func (IndexPage) Templates(_ context.Context) []string {
	return []string{"pages/index.html.tmpl"}
}

func (p IndexPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (IndexPage) Key(_ context.Context) string {
	return "index"
}

func (p IndexPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// MarkdownPage renders a page written in markdown, like the about page.
type MarkdownPage struct {
	Frame Frame
	Page  *sitedata.Page
}

func (MarkdownPage) Templates(_ context.Context) []string {
	return []string{"pages/markdown.html.tmpl"}
}

func (p MarkdownPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (MarkdownPage) Key(_ context.Context) string {
	return "markdown"
}

func (p MarkdownPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// PapersPage is the filterable list of papers. The papers themselves are
// loaded by the browser from papers.json.
type PapersPage struct {
	Frame    Frame
	Programs []string
	Tracks   []string
}

func (PapersPage) Templates(_ context.Context) []string {
	return []string{"pages/papers.html.tmpl"}
}

func (p PapersPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (PapersPage) LinkJS(_ context.Context) []render.JSLink {
	return []render.JSLink{
		{Src: "static/js/papers.js", PlaceInFooter: true},
	}
}

func (PapersPage) Key(_ context.Context) string {
	return "papers"
}

func (p PapersPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// PaperPage is the page of a single paper.
type PaperPage struct {
	Frame   Frame
	Paper   *sitedata.Paper
	Events  []*sitedata.Event
	Similar []*sitedata.Paper
}

// NewPaperPage looks up the paper with the passed id, along with the events
// it's presented in and the papers similar to it.
func NewPaperPage(site *Site, id string) (PaperPage, error) {
	paper, err := site.Data.Paper(id)
	if err != nil {
		return PaperPage{}, err
	}
	page := PaperPage{
		Frame: Frame{Title: paper.Title, Active: "papers"},
		Paper: paper,
	}
	for _, eventID := range paper.EventIDs {
		event, err := site.Data.Event(eventID)
		if err != nil {
			return PaperPage{}, err
		}
		page.Events = append(page.Events, event)
	}
	for _, similar := range site.Data.SimilarPapers(paper) {
		// similarity lists usually start with the paper itself
		if similar.ID == paper.ID {
			continue
		}
		page.Similar = append(page.Similar, similar)
	}
	return page, nil
}

func (PaperPage) Templates(_ context.Context) []string {
	return []string{"pages/paper.html.tmpl"}
}

func (p PaperPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame, Collapsible{}, SlidesLiveEmbed{}, ChatEmbed{}}
}

func (p PaperPage) LinkJS(_ context.Context) []render.JSLink {
	if p.Paper.PresentationID == "" {
		return nil
	}
	return slidesLiveScripts()
}

func (PaperPage) Key(_ context.Context) string {
	return "paper"
}

func (p PaperPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// TutorialsPage lists every tutorial.
type TutorialsPage struct {
	Frame     Frame
	Tutorials []*sitedata.Tutorial
}

func (TutorialsPage) Templates(_ context.Context) []string {
	return []string{"pages/tutorials.html.tmpl"}
}

func (p TutorialsPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (TutorialsPage) Key(_ context.Context) string {
	return "tutorials"
}

func (p TutorialsPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// TutorialPage is the page of a single tutorial.
type TutorialPage struct {
	Frame    Frame
	Tutorial *sitedata.Tutorial
}

func (TutorialPage) Templates(_ context.Context) []string {
	return []string{"pages/tutorial.html.tmpl"}
}

func (p TutorialPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame, Collapsible{}, ChatEmbed{}}
}

func (TutorialPage) Key(_ context.Context) string {
	return "tutorial"
}

func (p TutorialPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// WorkshopsPage lists every workshop.
type WorkshopsPage struct {
	Frame     Frame
	Workshops []*sitedata.Workshop
}

func (WorkshopsPage) Templates(_ context.Context) []string {
	return []string{"pages/workshops.html.tmpl"}
}

func (p WorkshopsPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (WorkshopsPage) Key(_ context.Context) string {
	return "workshops"
}

func (p WorkshopsPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// WorkshopPage is the page of a single workshop.
type WorkshopPage struct {
	Frame    Frame
	Workshop *sitedata.Workshop
}

func (WorkshopPage) Templates(_ context.Context) []string {
	return []string{"pages/workshop.html.tmpl"}
}

func (p WorkshopPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame, Collapsible{}, ChatEmbed{}}
}

func (WorkshopPage) Key(_ context.Context) string {
	return "workshop"
}

func (p WorkshopPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// SchedulePage is the calendar of the whole conference. The calendar loads
// its events from calendar.json.
type SchedulePage struct {
	Frame Frame
}

func (SchedulePage) Templates(_ context.Context) []string {
	return []string{"pages/schedule.html.tmpl"}
}

func (p SchedulePage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame, Calendar{}}
}

func (SchedulePage) Key(_ context.Context) string {
	return "schedule"
}

func (p SchedulePage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// SessionsPage lists the program sessions, in a tab per day, with the
// papers presented in each.
type SessionsPage struct {
	Frame  Frame
	Days   []sitedata.Day
	ByDay  map[string][]*sitedata.Session
	Papers map[string]*sitedata.Paper
}

func (SessionsPage) Templates(_ context.Context) []string {
	return []string{"pages/sessions.html.tmpl", "partials/day_tabs.html.tmpl"}
}

func (p SessionsPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (SessionsPage) Key(_ context.Context) string {
	return "sessions"
}

func (p SessionsPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// OrganizersPage lists the organizing committee by role.
type OrganizersPage struct {
	Frame Frame
	Roles []sitedata.CommitteeRole
}

func (OrganizersPage) Templates(_ context.Context) []string {
	return []string{"pages/organizers.html.tmpl"}
}

func (p OrganizersPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (OrganizersPage) Key(_ context.Context) string {
	return "organizers"
}

func (p OrganizersPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// NotFoundPage is rendered for paths and ids that don't exist.
type NotFoundPage struct {
	Frame Frame
	Path  string
}

func (NotFoundPage) Templates(_ context.Context) []string {
	return []string{"pages/not_found.html.tmpl"}
}

func (p NotFoundPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (NotFoundPage) Key(_ context.Context) string {
	return "not_found"
}

func (p NotFoundPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// ServerErrorPage is rendered in place of a page that failed to render. The
// error is logged, not shown.
type ServerErrorPage struct {
	Frame Frame
	Err   error
}

func (ServerErrorPage) Templates(_ context.Context) []string {
	return []string{"pages/server_error.html.tmpl"}
}

func (p ServerErrorPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (ServerErrorPage) Key(_ context.Context) string {
	return "server_error"
}

func (p ServerErrorPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// SponsorsPage lists the sponsors by level.
type SponsorsPage struct {
	Frame  Frame
	Levels []sitedata.SponsorLevel
}

func (SponsorsPage) Templates(_ context.Context) []string {
	return []string{"pages/sponsors.html.tmpl"}
}

func (p SponsorsPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (SponsorsPage) Key(_ context.Context) string {
	return "sponsors"
}

func (p SponsorsPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// SponsorPage is the page of a single sponsor.
type SponsorPage struct {
	Frame   Frame
	Sponsor *sitedata.Sponsor
}

func (SponsorPage) Templates(_ context.Context) []string {
	return []string{"pages/sponsor.html.tmpl"}
}

func (p SponsorPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame, ChatEmbed{}}
}

func (SponsorPage) Key(_ context.Context) string {
	return "sponsor"
}

func (p SponsorPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// SocialsPage lists every social event. Each event's card is anchored by its
// id, which the schedule links to.
type SocialsPage struct {
	Frame   Frame
	Socials []*sitedata.Social
}

func (SocialsPage) Templates(_ context.Context) []string {
	return []string{"pages/socials.html.tmpl"}
}

func (p SocialsPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (SocialsPage) Key(_ context.Context) string {
	return "socials"
}

func (p SocialsPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}
