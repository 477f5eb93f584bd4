package pages

import (
	"context"

	"impractical.co/miniconf/internal/render"
	"impractical.co/miniconf/internal/sitedata"
)

// LayoutKind is one of the mutually exclusive ways a plenary session page
// can be laid out.
type LayoutKind string

const (
	// LayoutVideos shows every pre-recorded video of the session, with
	// the session's chat next to them.
	LayoutVideos LayoutKind = "videos"

	// LayoutAward shows the award's introduction video and the awardee's
	// talk.
	LayoutAward LayoutKind = "award"

	// LayoutSplit shows the session's video and its chat side by side.
	LayoutSplit LayoutKind = "split"

	// LayoutFullWidth shows whichever of the video or the chat the
	// session has, across the whole page.
	LayoutFullWidth LayoutKind = "full-width"

	// LayoutPlain shows no embeds at all.
	LayoutPlain LayoutKind = "plain"
)

// PlenaryLayout is what SelectLayout decided for a plenary session.
type PlenaryLayout struct {
	Kind LayoutKind

	// ChatChannel is the Rocket.Chat channel to embed, if any.
	ChatChannel string

	// PresentationID is the SlidesLive presentation to embed in the
	// split and full-width layouts.
	PresentationID string

	// IntroPresentationID and TalkPresentationID are the two videos of
	// the award layout.
	IntroPresentationID string
	TalkPresentationID  string

	Videos []sitedata.PlenaryVideo

	// ShowAbstract and ShowBio are decided independently of Kind.
	ShowAbstract bool
	ShowBio      bool
}

// ColumnClass is the grid class of each embed in the split and full-width
// layouts.
func (l PlenaryLayout) ColumnClass() string {
	switch l.Kind {
	case LayoutSplit:
		return "col-md-6"
	case LayoutFullWidth:
		return "col-md-12"
	default:
		return ""
	}
}

// HasVideo is whether the layout embeds any SlidesLive player.
func (l PlenaryLayout) HasVideo() bool {
	switch l.Kind {
	case LayoutVideos, LayoutAward:
		return true
	default:
		return l.PresentationID != ""
	}
}

// SelectLayout decides how the page of a plenary session is laid out. The
// checks run in a fixed order: a session with videos always gets the videos
// layout, then award sessions get the award layout, and only then do the
// session's own presentation and chat decide between the split, full-width,
// and plain layouts.
func SelectLayout(session *sitedata.PlenarySession, overrides sitedata.Overrides) PlenaryLayout {
	layout := PlenaryLayout{
		ShowAbstract: session.Abstract != "",
		ShowBio:      session.Bio != "",
	}
	if len(session.Videos) > 0 {
		layout.Kind = LayoutVideos
		layout.Videos = session.Videos
		layout.ChatChannel = overrides.ChatChannel(session.ID)
		return layout
	}
	if award, ok := overrides.Award(session.ID); ok {
		layout.Kind = LayoutAward
		layout.IntroPresentationID = award.Intro
		layout.TalkPresentationID = award.Talk
		if layout.TalkPresentationID == "" {
			layout.TalkPresentationID = session.PresentationID
		}
		return layout
	}
	layout.ChatChannel = session.RocketChatChannel
	layout.PresentationID = session.PresentationID
	switch {
	case layout.ChatChannel != "" && layout.PresentationID != "":
		layout.Kind = LayoutSplit
	case layout.ChatChannel != "" || layout.PresentationID != "":
		layout.Kind = LayoutFullWidth
	default:
		layout.Kind = LayoutPlain
	}
	return layout
}

// PlenarySessionPage is the page of a single plenary session.
type PlenarySessionPage struct {
	Frame   Frame
	Session *sitedata.PlenarySession
	Layout  PlenaryLayout
}

// NewPlenarySessionPage looks up the plenary session with the passed id and
// decides its layout. Unknown ids return an error wrapping
// sitedata.ErrNotFound.
func NewPlenarySessionPage(site *Site, id string) (PlenarySessionPage, error) {
	session, err := site.Data.PlenarySession(id)
	if err != nil {
		return PlenarySessionPage{}, err
	}
	return PlenarySessionPage{
		Frame:   Frame{Title: session.Title, Active: "plenary_sessions"},
		Session: session,
		Layout:  SelectLayout(session, site.Overrides),
	}, nil
}

func (PlenarySessionPage) Templates(_ context.Context) []string {
	return []string{"pages/plenary_session.html.tmpl"}
}

func (p PlenarySessionPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame, Collapsible{}, SlidesLiveEmbed{}, ChatEmbed{}}
}

func (p PlenarySessionPage) LinkJS(_ context.Context) []render.JSLink {
	if !p.Layout.HasVideo() {
		return nil
	}
	return slidesLiveScripts()
}

func (PlenarySessionPage) Key(_ context.Context) string {
	return "plenary_session"
}

func (p PlenarySessionPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}

// PlenarySessionsPage lists every plenary session, in a tab per day.
type PlenarySessionsPage struct {
	Frame Frame
	Days  []sitedata.Day
	ByDay map[string][]*sitedata.PlenarySession
}

func (PlenarySessionsPage) Templates(_ context.Context) []string {
	return []string{"pages/plenary_sessions.html.tmpl", "partials/day_tabs.html.tmpl"}
}

func (p PlenarySessionsPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Frame}
}

func (PlenarySessionsPage) Key(_ context.Context) string {
	return "plenary_sessions"
}

func (p PlenarySessionsPage) ExecutedTemplate(_ context.Context) string {
	return p.Frame.BaseTemplate()
}
