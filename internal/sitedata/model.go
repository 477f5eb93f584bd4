package sitedata

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Session types, as they appear in the type field of session records and on
// calendar events.
const (
	TypePlenary       = "Plenary Sessions"
	TypeTutorials     = "Tutorials"
	TypeWorkshops     = "Workshops"
	TypePaperSessions = "Paper Sessions"
	TypeSocials       = "Socials"
	TypeSponsors      = "Sponsors"
)

// SessionInfo is one scheduled slot of a plenary session, tutorial, or
// workshop.
type SessionInfo struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
	Link  string    `json:"link,omitempty"`
}

// Day is the UTC date of the slot, like "Jul 10".
func (s SessionInfo) Day() string {
	return s.Start.UTC().Format("Jan 2")
}

// TimeString is the UTC time range of the slot, like "(09:00-10:00 UTC)".
func (s SessionInfo) TimeString() string {
	return timeString(s.Start, s.End)
}

// StartString is the start of the slot in the format the schedule script
// expects.
func (s SessionInfo) StartString() string {
	return s.Start.UTC().Format("2006-01-02T15:04:05")
}

// EndString is the end of the slot in the format the schedule script
// expects.
func (s SessionInfo) EndString() string {
	return s.End.UTC().Format("2006-01-02T15:04:05")
}

// PlenaryVideo is a pre-recorded talk shown on a plenary session's page.
type PlenaryVideo struct {
	ID             string   `json:"id"`
	Session        string   `json:"session"`
	Title          string   `json:"title"`
	Speakers       []string `json:"speakers"`
	PresentationID string   `json:"presentation_id,omitempty"`
}

// PlenarySession is a keynote, award, or other session the whole conference
// attends.
type PlenarySession struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Day         string `json:"day"`
	Presenter   string `json:"presenter,omitempty"`
	Institution string `json:"institution,omitempty"`
	Abstract    string `json:"abstract,omitempty"`
	Bio         string `json:"bio,omitempty"`

	// PresentationID is the SlidesLive presentation for the session.
	PresentationID    string         `json:"presentation_id,omitempty"`
	RocketChatChannel string         `json:"rocketchat_channel,omitempty"`
	Sessions          []SessionInfo  `json:"sessions"`
	Videos            []PlenaryVideo `json:"videos"`
}

// Paper is an accepted paper in any of the conference's programs.
type Paper struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Track           string   `json:"track"`
	PaperType       string   `json:"paper_type"`
	Program         string   `json:"program"`
	Abstract        string   `json:"abstract"`
	TLDR            string   `json:"tldr"`
	Keywords        []string `json:"keywords"`
	EventIDs        []string `json:"event_ids"`
	SimilarPaperIDs []string `json:"similar_paper_ids"`
	PDFURL          string   `json:"pdf_url,omitempty"`
	VideoURL        string   `json:"video_url,omitempty"`
	PresentationID  string   `json:"presentation_id,omitempty"`
	CardImagePath   string   `json:"card_image_path"`

	// Workshop is the id of the workshop presenting the paper, for papers
	// of the workshop program.
	Workshop string `json:"workshop,omitempty"`
}

// ChatChannel is the Rocket.Chat channel discussing the paper.
func (p *Paper) ChatChannel() string {
	return PaperChatChannel(p.ID)
}

// Tutorial is a tutorial and the slots it's scheduled in.
type Tutorial struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Organizers        []string      `json:"organizers"`
	Abstract          string        `json:"abstract"`
	Website           string        `json:"website,omitempty"`
	Material          string        `json:"material,omitempty"`
	Slides            string        `json:"slides,omitempty"`
	Prerecorded       string        `json:"prerecorded,omitempty"`
	RocketChatChannel string        `json:"rocketchat_channel,omitempty"`
	Sessions          []SessionInfo `json:"sessions"`
}

// Workshop is a workshop and the slots it's scheduled in.
type Workshop struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Organizers        []string      `json:"organizers"`
	Abstract          string        `json:"abstract"`
	Website           string        `json:"website,omitempty"`
	Livestream        string        `json:"livestream,omitempty"`
	RocketChatChannel string        `json:"rocketchat_channel,omitempty"`
	Sessions          []SessionInfo `json:"sessions"`

	// Papers are the papers naming the workshop, in load order.
	Papers []*Paper `json:"papers"`
}

// Social is a social event, like a reception or an affinity group meetup.
type Social struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Image             string        `json:"image,omitempty"`
	Location          string        `json:"location,omitempty"`
	Organizers        []string      `json:"organizers"`
	Website           string        `json:"website,omitempty"`
	RocketChatChannel string        `json:"rocketchat_channel,omitempty"`
	Sessions          []SessionInfo `json:"sessions"`
}

// Sponsor is a sponsor of the conference. A sponsor can hold more than one
// level, like a Gold sponsor that's also a Diversity & Inclusion Champion.
type Sponsor struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Levels            []string `json:"levels"`
	Logo              string   `json:"logo,omitempty"`
	Website           string   `json:"website,omitempty"`
	Description       string   `json:"description,omitempty"`
	RocketChatChannel string   `json:"rocketchat_channel,omitempty"`
	PublicationIDs    []string `json:"publication_ids,omitempty"`
	Publications      []*Paper `json:"publications,omitempty"`
}

// SponsorLevel is a sponsorship level and its sponsors, in load order.
type SponsorLevel struct {
	Name     string     `json:"name"`
	Sponsors []*Sponsor `json:"sponsors"`
}

// Event is one track inside a program session, like the oral presentations
// of one track in "Session 1".
type Event struct {
	ID       string    `json:"id"`
	Session  string    `json:"session"`
	Track    string    `json:"track"`
	Type     string    `json:"type"`
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time"`
	Chairs   []string  `json:"chairs"`
	PaperIDs []string  `json:"paper_ids"`
	Room     string    `json:"room,omitempty"`
	Link     string    `json:"link,omitempty"`
}

// Session is a time slot of the program.
type Session struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Start  time.Time `json:"start_time"`
	End    time.Time `json:"end_time"`
	Events []Event   `json:"events"`
}

// Day is the UTC date of the session, like "Jul 10".
func (s *Session) Day() string {
	return s.Start.UTC().Format("Jan 02")
}

// TimeString is the UTC time range of the session, like "(09:00-10:00 UTC)".
func (s *Session) TimeString() string {
	return timeString(s.Start, s.End)
}

// CommitteeMember is one organizer of the conference.
type CommitteeMember struct {
	Role        string `json:"role"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
}

// CommitteeRole groups the members sharing a role, in the order the role
// first appeared in the committee data.
type CommitteeRole struct {
	Role    string            `json:"role"`
	Members []CommitteeMember `json:"members"`
}

// Section is the rendered body of one markdown file of a Page.
type Section struct {
	Slug  string        `json:"slug"`
	Title string        `json:"title"`
	Order int           `json:"order"`
	Body  template.HTML `json:"body"`
}

// Page is a markdown-backed page, like the about page or the FAQ.
type Page struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Day is a tab on a page that lists things per day.
type Day struct {
	TabID  string `json:"tab_id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// CalendarEvent is an entry of the schedule page's calendar.
type CalendarEvent struct {
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Location   string    `json:"location"`
	URL        string    `json:"url"`
	Category   string    `json:"category"`
	Type       string    `json:"type"`
	View       string    `json:"view"`
	ClassNames []string  `json:"classNames"`
}

func timeString(start, end time.Time) string {
	return fmt.Sprintf("(%s-%s UTC)", start.UTC().Format("15:04"), end.UTC().Format("15:04"))
}

// tabID turns a day label into the element id of its tab pane: "Jul 10"
// becomes "tab-jul10". Links into a listing page point at the same id.
func tabID(label string) string {
	return "tab-" + strings.ToLower(strings.ReplaceAll(label, " ", ""))
}
