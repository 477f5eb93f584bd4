package pages

import (
	"context"
	"html/template"

	"impractical.co/miniconf/internal/render"
)

const (
	jqueryJS        = "https://code.jquery.com/jquery-3.5.1.min.js"
	bootstrapJS     = "https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/js/bootstrap.bundle.min.js"
	bootstrapCSS    = "https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/css/bootstrap.min.css"
	slidesLiveJS    = "https://slideslive.com/embed_presentation.js"
	fullCalendarJS  = "https://cdn.jsdelivr.net/npm/fullcalendar@5.11.3/main.min.js"
	fullCalendarCSS = "https://cdn.jsdelivr.net/npm/fullcalendar@5.11.3/main.min.css"
)

// Frame is the document every page is rendered into: head, navbar, and
// footer. Pages fill in its "content" block.
type Frame struct {
	// Title is the page's title, shown before the site title.
	Title string

	// Active is the Key of the navbar item to highlight.
	Active string
}

func (Frame) Templates(_ context.Context) []string {
	return []string{"base.html.tmpl", "partials/nav.html.tmpl"}
}

// BaseTemplate is the template pages execute.
func (Frame) BaseTemplate() string {
	return "base.html.tmpl"
}

func (Frame) LinkCSS(_ context.Context) []render.CSSLink {
	return []render.CSSLink{
		{Href: bootstrapCSS},
		{Href: "static/css/main.css"},
	}
}

func (Frame) LinkJS(_ context.Context) []render.JSLink {
	return []render.JSLink{
		{Src: jqueryJS},
		{Src: bootstrapJS},
	}
}

// ChatEmbed is the Rocket.Chat iframe next to a talk.
type ChatEmbed struct{}

func (ChatEmbed) Templates(_ context.Context) []string {
	return []string{"partials/chat.html.tmpl"}
}

// SlidesLiveEmbed is a SlidesLive video player.
type SlidesLiveEmbed struct{}

func (SlidesLiveEmbed) Templates(_ context.Context) []string {
	return []string{"partials/slideslive.html.tmpl"}
}

// slidesLiveScripts are the scripts pages showing a SlidesLiveEmbed need.
func slidesLiveScripts() []render.JSLink {
	return []render.JSLink{
		// the players are set up by inline scripts next to them, so the
		// library has to be loaded up front
		{Src: slidesLiveJS, After: []string{jqueryJS}},
	}
}

// Collapsible is a block of text hidden behind its heading, like a talk's
// abstract.
type Collapsible struct{}

func (Collapsible) Templates(_ context.Context) []string {
	return []string{"partials/collapsible.html.tmpl"}
}

// CollapsibleSection is the argument of the "collapsible" template.
type CollapsibleSection struct {
	ID    string
	Title string
	Body  string
}

// FuncMap adds a "collapsible" function building the argument of the
// "collapsible" template, which templates can't otherwise do.
func (Collapsible) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"collapsible": func(id, title, body string) CollapsibleSection {
			return CollapsibleSection{ID: id, Title: title, Body: body}
		},
	}
}

// Calendar is the FullCalendar view of the schedule.
type Calendar struct{}

func (Calendar) Templates(_ context.Context) []string {
	return []string{"partials/calendar.html.tmpl"}
}

func (Calendar) LinkCSS(_ context.Context) []render.CSSLink {
	return []render.CSSLink{
		{Href: fullCalendarCSS, After: []string{bootstrapCSS}},
	}
}

func (Calendar) LinkJS(_ context.Context) []render.JSLink {
	return []render.JSLink{
		{Src: fullCalendarJS, PlaceInFooter: true},
		{Src: "static/js/schedule.js", PlaceInFooter: true, After: []string{fullCalendarJS}},
	}
}
