package sitedata

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"impractical.co/miniconf/internal/logging"
)

const tracerName = "impractical.co/miniconf/internal/sitedata"

const (
	// MainProgram is the program whose tracks are listed on the papers
	// page.
	MainProgram = "main"

	// WorkshopProgram is the program of workshop papers. Its tracks are
	// the workshops themselves.
	WorkshopProgram = "workshop"
)

// Site is everything the loader read out of a data directory, plus the
// indices the pages need. A Site is never modified after Load returns it, and
// is safe to share between goroutines.
type Site struct {
	Config          Config            `json:"config"`
	Entries         []ConfigEntry     `json:"entries"`
	Papers          []*Paper          `json:"papers"`
	PlenarySessions []*PlenarySession `json:"plenary_sessions"`
	Tutorials       []*Tutorial       `json:"tutorials"`
	Workshops       []*Workshop       `json:"workshops"`
	Sessions        []*Session        `json:"sessions"`
	Committee       []CommitteeMember `json:"committee"`
	Socials         []*Social         `json:"socials"`
	Sponsors        []*Sponsor        `json:"sponsors"`
	Pages           map[string]*Page  `json:"pages"`

	// Programs are the paper programs, in display order.
	Programs []string `json:"programs"`

	// Tracks maps each program to the tracks of its papers, sorted.
	Tracks            map[string][]string `json:"tracks"`
	MainProgramTracks []string            `json:"main_program_tracks"`

	PlenaryDays     []Day                        `json:"plenary_days"`
	PlenaryByDay    map[string][]*PlenarySession `json:"plenary_by_day"`
	SessionDays     []Day                        `json:"session_days"`
	SessionsByDay   map[string][]*Session        `json:"sessions_by_day"`
	CommitteeByRole []CommitteeRole              `json:"committee_by_role"`
	SponsorsByLevel []SponsorLevel               `json:"sponsors_by_level"`
	Calendar        []CalendarEvent              `json:"calendar"`

	papers    map[string]*Paper
	plenaries map[string]*PlenarySession
	tutorials map[string]*Tutorial
	workshops map[string]*Workshop
	sessions  map[string]*Session
	events    map[string]*Event
	socials   map[string]*Social
	sponsors  map[string]*Sponsor
}

// LoadDir loads the site data in the directory at dir.
func LoadDir(ctx context.Context, dir string) (*Site, error) {
	return Load(ctx, os.DirFS(dir))
}

// Load reads the configs directory of fsys, every data file and markdown
// directory its entries point to, and returns the resulting Site. Any
// missing file, malformed file, duplicate id, dangling reference, or
// contradiction fails the whole load; no partial Site is ever returned.
func Load(ctx context.Context, fsys fs.FS) (*Site, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "sitedata.Load")
	defer span.End()

	site, err := load(ctx, fsys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("miniconf.papers", len(site.Papers)),
		attribute.Int("miniconf.plenary_sessions", len(site.PlenarySessions)),
		attribute.Int("miniconf.sessions", len(site.Sessions)),
		attribute.Int("miniconf.pages", len(site.Pages)),
	)
	return site, nil
}

func load(ctx context.Context, fsys fs.FS) (*Site, error) {
	logger := logging.FromContext(ctx)

	cfg, err := readConfig(fsys)
	if err != nil {
		return nil, err
	}
	entries, titles, err := readEntries(fsys)
	if err != nil {
		return nil, err
	}
	site := &Site{
		Config:  cfg,
		Entries: entries,
		Pages:   map[string]*Page{},
	}
	b := newBuilder(site, cfg.Location())
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch entry.Content {
		case ContentMarkdown:
			page, err := loadPage(fsys, entry, titles[entry.Group])
			if err != nil {
				return nil, err
			}
			site.Pages[entry.Name] = page
			logger.DebugContext(ctx, "loaded page", "entry", entry.Name, "sections", len(page.Sections))
		case ContentRecords:
			data, err := readFile(fsys, entry.Path)
			if err != nil {
				return nil, err
			}
			records, err := decodeRecords(entry.Path, entry.Name, data)
			if err != nil {
				return nil, err
			}
			if err := b.add(entry, records); err != nil {
				return nil, err
			}
			logger.DebugContext(ctx, "loaded records", "entry", entry.Name, "kind", entry.Kind, "records", len(records))
		}
	}
	if err := b.finish(ctx); err != nil {
		return nil, err
	}
	return site, nil
}

// finish attaches videos to their sessions, checks every reference between
// records, and derives the indices.
func (b *builder) finish(ctx context.Context) error {
	site := b.site
	logger := logging.FromContext(ctx)

	site.papers = index(site.Papers, func(p *Paper) string { return p.ID })
	site.plenaries = index(site.PlenarySessions, func(p *PlenarySession) string { return p.ID })
	site.tutorials = index(site.Tutorials, func(t *Tutorial) string { return t.ID })
	site.workshops = index(site.Workshops, func(w *Workshop) string { return w.ID })
	site.sessions = index(site.Sessions, func(s *Session) string { return s.ID })
	site.socials = index(site.Socials, func(s *Social) string { return s.ID })
	site.sponsors = index(site.Sponsors, func(s *Sponsor) string { return s.ID })
	site.events = map[string]*Event{}
	for _, session := range site.Sessions {
		for pos := range session.Events {
			site.events[session.Events[pos].ID] = &session.Events[pos]
		}
	}

	for _, video := range b.videos {
		plenary, ok := site.plenaries[video.Session]
		if !ok {
			return fmt.Errorf("%w: video %q belongs to plenary session %q", ErrNotFound, video.ID, video.Session)
		}
		plenary.Videos = append(plenary.Videos, video)
	}
	for _, plenary := range site.PlenarySessions {
		if _, award := site.Config.Overrides.Award(plenary.ID); award && len(plenary.Videos) > 0 {
			return fmt.Errorf("%w: plenary session %q is an award session but has %d videos", ErrConflict, plenary.ID, len(plenary.Videos))
		}
	}

	for _, paper := range site.Papers {
		for _, id := range paper.EventIDs {
			if _, ok := site.events[id]; !ok {
				return fmt.Errorf("%w: paper %q is scheduled in event %q", ErrNotFound, paper.ID, id)
			}
		}
		for _, id := range paper.SimilarPaperIDs {
			if _, ok := site.papers[id]; !ok {
				return fmt.Errorf("%w: paper %q lists similar paper %q", ErrNotFound, paper.ID, id)
			}
		}
		if paper.Workshop != "" {
			workshop, ok := site.workshops[paper.Workshop]
			if !ok {
				return fmt.Errorf("%w: paper %q is presented at workshop %q", ErrNotFound, paper.ID, paper.Workshop)
			}
			if paper.Program == "" {
				paper.Program = WorkshopProgram
			}
			if paper.Program != WorkshopProgram {
				return fmt.Errorf("%w: paper %q is presented at workshop %q but belongs to program %q", ErrConflict, paper.ID, paper.Workshop, paper.Program)
			}
			workshop.Papers = append(workshop.Papers, paper)
		}
		if paper.Track == "" && paper.Workshop == "" {
			logger.WarnContext(ctx, "paper has no track", "paper", paper.ID)
		}
	}
	for _, sponsor := range site.Sponsors {
		for _, id := range sponsor.PublicationIDs {
			paper, ok := site.papers[id]
			if !ok {
				return fmt.Errorf("%w: sponsor %q lists publication %q", ErrNotFound, sponsor.ID, id)
			}
			sponsor.Publications = append(sponsor.Publications, paper)
		}
	}
	for _, session := range site.Sessions {
		for _, event := range session.Events {
			for _, id := range event.PaperIDs {
				if _, ok := site.papers[id]; !ok {
					return fmt.Errorf("%w: event %q of session %q presents paper %q", ErrNotFound, event.ID, session.ID, id)
				}
			}
		}
	}

	site.Programs, site.Tracks = programs(site.Config.Programs, site.Papers)
	if titles := workshopTracks(site.Workshops); len(titles) > 0 {
		site.Tracks[WorkshopProgram] = titles
	}
	site.MainProgramTracks = site.Tracks[MainProgram]
	site.PlenaryDays, site.PlenaryByDay = plenaryDays(site.PlenarySessions)
	site.SessionDays, site.SessionsByDay = buildSessionDays(site.Sessions)
	site.CommitteeByRole = committeeByRole(site.Committee)
	site.SponsorsByLevel = sponsorsByLevel(site.Config.SponsorLevels, site.Sponsors)
	site.Calendar = buildCalendar(site)
	return nil
}

func index[T any](items []T, key func(T) string) map[string]T {
	res := make(map[string]T, len(items))
	for _, item := range items {
		res[key(item)] = item
	}
	return res
}

// programs returns the configured programs, or the programs of the papers
// sorted by name when none are configured, along with each program's
// tracks.
func programs(configured []string, papers []*Paper) ([]string, map[string][]string) {
	tracks := map[string][]string{}
	for _, paper := range papers {
		if paper.Program == "" {
			continue
		}
		if _, ok := tracks[paper.Program]; !ok {
			tracks[paper.Program] = nil
		}
		if paper.Track != "" && !slices.Contains(tracks[paper.Program], paper.Track) {
			tracks[paper.Program] = append(tracks[paper.Program], paper.Track)
		}
	}
	for program := range tracks {
		slices.Sort(tracks[program])
	}
	if len(configured) > 0 {
		return slices.Clone(configured), tracks
	}
	res := make([]string, 0, len(tracks))
	for program := range tracks {
		res = append(res, program)
	}
	slices.Sort(res)
	return res, tracks
}

// workshopTracks returns the titles of the workshops presenting papers, in
// load order.
func workshopTracks(workshops []*Workshop) []string {
	var res []string
	for _, workshop := range workshops {
		if len(workshop.Papers) > 0 {
			res = append(res, workshop.Title)
		}
	}
	return res
}

// sponsorsByLevel groups sponsors by level, in the order of levels. Levels
// without sponsors are left out.
func sponsorsByLevel(levels []string, sponsors []*Sponsor) []SponsorLevel {
	var res []SponsorLevel
	for _, level := range levels {
		group := SponsorLevel{Name: level}
		for _, sponsor := range sponsors {
			if slices.Contains(sponsor.Levels, level) {
				group.Sponsors = append(group.Sponsors, sponsor)
			}
		}
		if len(group.Sponsors) > 0 {
			res = append(res, group)
		}
	}
	return res
}

// plenaryDays groups plenary sessions by their day, ordering the days by
// their earliest session.
func plenaryDays(plenaries []*PlenarySession) ([]Day, map[string][]*PlenarySession) {
	byDay := map[string][]*PlenarySession{}
	var labels []string
	for _, plenary := range plenaries {
		if plenary.Day == "" {
			continue
		}
		if _, ok := byDay[plenary.Day]; !ok {
			labels = append(labels, plenary.Day)
		}
		byDay[plenary.Day] = append(byDay[plenary.Day], plenary)
	}
	earliest := func(label string) int64 {
		var res int64
		for pos, plenary := range byDay[label] {
			start := firstStart(plenary.Sessions)
			if pos == 0 || start < res {
				res = start
			}
		}
		return res
	}
	slices.SortStableFunc(labels, func(a, b string) int {
		return cmp.Compare(earliest(a), earliest(b))
	})
	for label := range byDay {
		slices.SortStableFunc(byDay[label], func(a, b *PlenarySession) int {
			return cmp.Compare(firstStart(a.Sessions), firstStart(b.Sessions))
		})
	}
	days := make([]Day, 0, len(labels))
	for pos, label := range labels {
		days = append(days, Day{TabID: tabID(label), Label: label, Active: pos == 0})
	}
	return days, byDay
}

func firstStart(infos []SessionInfo) int64 {
	if len(infos) < 1 {
		return 0
	}
	return infos[0].Start.Unix()
}

// committeeByRole groups committee members by role, in the order each role
// first appears. Roles ending in "chair" held by more than one member are
// pluralised.
func committeeByRole(members []CommitteeMember) []CommitteeRole {
	var roles []CommitteeRole
	positions := map[string]int{}
	for _, member := range members {
		pos, ok := positions[member.Role]
		if !ok {
			pos = len(roles)
			positions[member.Role] = pos
			roles = append(roles, CommitteeRole{Role: member.Role})
		}
		roles[pos].Members = append(roles[pos].Members, member)
	}
	for pos := range roles {
		if len(roles[pos].Members) > 1 && strings.HasSuffix(strings.ToLower(roles[pos].Role), "chair") {
			roles[pos].Role += "s"
		}
	}
	return roles
}

// Paper returns the paper with the passed id.
func (s *Site) Paper(id string) (*Paper, error) {
	return lookup(s.papers, "paper", id)
}

// PlenarySession returns the plenary session with the passed id.
func (s *Site) PlenarySession(id string) (*PlenarySession, error) {
	return lookup(s.plenaries, "plenary session", id)
}

// Tutorial returns the tutorial with the passed id.
func (s *Site) Tutorial(id string) (*Tutorial, error) {
	return lookup(s.tutorials, "tutorial", id)
}

// Workshop returns the workshop with the passed id.
func (s *Site) Workshop(id string) (*Workshop, error) {
	return lookup(s.workshops, "workshop", id)
}

// Session returns the program session with the passed id.
func (s *Site) Session(id string) (*Session, error) {
	return lookup(s.sessions, "session", id)
}

// Social returns the social event with the passed id.
func (s *Site) Social(id string) (*Social, error) {
	return lookup(s.socials, "social", id)
}

// Sponsor returns the sponsor with the passed id.
func (s *Site) Sponsor(id string) (*Sponsor, error) {
	return lookup(s.sponsors, "sponsor", id)
}

// Page returns the markdown page with the passed name.
func (s *Site) Page(name string) (*Page, error) {
	return lookup(s.Pages, "page", name)
}

func lookup[T any](items map[string]*T, kind, id string) (*T, error) {
	item, ok := items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	return item, nil
}

// PapersByProgram returns the papers of the passed program, in load order.
func (s *Site) PapersByProgram(program string) []*Paper {
	var res []*Paper
	for _, paper := range s.Papers {
		if paper.Program == program {
			res = append(res, paper)
		}
	}
	return res
}

// TrackPapers returns the papers of the passed program whose track's id, as
// returned by NameToID, is trackID. The tracks of the workshop program are
// workshop titles.
func (s *Site) TrackPapers(program, trackID string) []*Paper {
	if program == WorkshopProgram {
		for _, workshop := range s.Workshops {
			if NameToID(workshop.Title) == trackID && len(workshop.Papers) > 0 {
				return workshop.Papers
			}
		}
	}
	var res []*Paper
	for _, paper := range s.Papers {
		if paper.Program == program && NameToID(paper.Track) == trackID {
			res = append(res, paper)
		}
	}
	return res
}

// SimilarPapers returns the papers the passed paper lists as similar.
func (s *Site) SimilarPapers(paper *Paper) []*Paper {
	res := make([]*Paper, 0, len(paper.SimilarPaperIDs))
	for _, id := range paper.SimilarPaperIDs {
		if similar, ok := s.papers[id]; ok {
			res = append(res, similar)
		}
	}
	return res
}

// Event returns the program event with the passed id.
func (s *Site) Event(id string) (*Event, error) {
	return lookup(s.events, "event", id)
}
