package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"impractical.co/miniconf/internal/render"
	"impractical.co/miniconf/internal/sitedata"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Document is what a path of the site resolves to: either a page or a JSON
// document.
type Document struct {
	// Path is the path the Document was routed from, without a leading
	// slash.
	Path string

	// ContentType is the media type of the Document's contents.
	ContentType string

	site *Site
	page render.Renderable
	data any
}

// IsPage is whether the Document is an HTML page.
func (d Document) IsPage() bool {
	return d.page != nil
}

// Write renders the Document to out. Nothing is written if rendering fails.
func (d Document) Write(ctx context.Context, out io.Writer) error {
	if d.page != nil {
		return render.Execute(ctx, out, d.site, d.page)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.data); err != nil {
		return fmt.Errorf("error encoding %s: %w", d.Path, err)
	}
	_, err := buf.WriteTo(out)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", d.Path, err)
	}
	return nil
}

// Router maps the paths of the site to the Documents they serve.
type Router struct {
	site *Site
}

// NewRouter returns a Router for the pages of site.
func NewRouter(site *Site) *Router {
	return &Router{site: site}
}

// Site returns the Site the Router renders with.
func (r *Router) Site() *Site {
	return r.site
}

// Route returns the Document served at path. Paths that aren't part of the
// site, and paths naming a record that doesn't exist, return an error
// wrapping sitedata.ErrNotFound.
func (r *Router) Route(_ context.Context, path string) (Document, error) {
	path = strings.TrimPrefix(path, "/")
	switch {
	case strings.HasSuffix(path, ".html"):
		page, err := r.page(strings.TrimSuffix(path, ".html"))
		if err != nil {
			return Document{}, err
		}
		return Document{Path: path, ContentType: contentTypeHTML, site: r.site, page: page}, nil
	case strings.HasSuffix(path, ".json"):
		data, err := r.json(strings.TrimSuffix(path, ".json"))
		if err != nil {
			return Document{}, err
		}
		return Document{Path: path, ContentType: contentTypeJSON, site: r.site, data: data}, nil
	default:
		return Document{}, fmt.Errorf("%w: path %q", sitedata.ErrNotFound, path)
	}
}

func (r *Router) page(name string) (render.Renderable, error) {
	data := r.site.Data
	switch name {
	case "index":
		return IndexPage{Frame: Frame{Title: "Home", Active: "index"}}, nil
	case "papers":
		return PapersPage{
			Frame:    Frame{Title: "Papers", Active: "papers"},
			Programs: data.Programs,
			Tracks:   data.MainProgramTracks,
		}, nil
	case "plenary_sessions":
		return PlenarySessionsPage{
			Frame: Frame{Title: "Plenary Sessions", Active: "plenary_sessions"},
			Days:  data.PlenaryDays,
			ByDay: data.PlenaryByDay,
		}, nil
	case "tutorials":
		return TutorialsPage{Frame: Frame{Title: "Tutorials", Active: "tutorials"}, Tutorials: data.Tutorials}, nil
	case "workshops":
		return WorkshopsPage{Frame: Frame{Title: "Workshops", Active: "workshops"}, Workshops: data.Workshops}, nil
	case "schedule":
		return SchedulePage{Frame: Frame{Title: "Schedule", Active: "schedule"}}, nil
	case "sessions":
		papers := make(map[string]*sitedata.Paper, len(data.Papers))
		for _, paper := range data.Papers {
			papers[paper.ID] = paper
		}
		return SessionsPage{
			Frame:  Frame{Title: "Sessions", Active: "sessions"},
			Days:   data.SessionDays,
			ByDay:  data.SessionsByDay,
			Papers: papers,
		}, nil
	case "organizers":
		return OrganizersPage{Frame: Frame{Title: "Organizers", Active: "organizers"}, Roles: data.CommitteeByRole}, nil
	case "sponsors":
		return SponsorsPage{Frame: Frame{Title: "Sponsors", Active: "sponsors"}, Levels: data.SponsorsByLevel}, nil
	case "socials":
		return SocialsPage{Frame: Frame{Title: "Socials", Active: "socials"}, Socials: data.Socials}, nil
	}
	switch {
	case strings.HasPrefix(name, "paper_"):
		return NewPaperPage(r.site, strings.TrimPrefix(name, "paper_"))
	case strings.HasPrefix(name, "plenary_session_"):
		return NewPlenarySessionPage(r.site, strings.TrimPrefix(name, "plenary_session_"))
	case strings.HasPrefix(name, "tutorial_"):
		tutorial, err := data.Tutorial(strings.TrimPrefix(name, "tutorial_"))
		if err != nil {
			return nil, err
		}
		return TutorialPage{Frame: Frame{Title: tutorial.Title, Active: "tutorials"}, Tutorial: tutorial}, nil
	case strings.HasPrefix(name, "workshop_"):
		workshop, err := data.Workshop(strings.TrimPrefix(name, "workshop_"))
		if err != nil {
			return nil, err
		}
		return WorkshopPage{Frame: Frame{Title: workshop.Title, Active: "workshops"}, Workshop: workshop}, nil
	case strings.HasPrefix(name, "sponsor_"):
		sponsor, err := data.Sponsor(strings.TrimPrefix(name, "sponsor_"))
		if err != nil {
			return nil, err
		}
		return SponsorPage{Frame: Frame{Title: sponsor.Name, Active: "sponsors"}, Sponsor: sponsor}, nil
	}
	page, err := data.Page(name)
	if err != nil {
		return nil, err
	}
	return MarkdownPage{Frame: Frame{Title: page.Title, Active: page.Name}, Page: page}, nil
}

func (r *Router) json(name string) (any, error) {
	data := r.site.Data
	switch name {
	case "papers":
		return data.Papers, nil
	case "calendar":
		return data.Calendar, nil
	}
	switch {
	case strings.HasPrefix(name, "papers_"):
		program := strings.TrimPrefix(name, "papers_")
		if _, ok := data.Tracks[program]; !ok {
			return nil, fmt.Errorf("%w: program %q", sitedata.ErrNotFound, program)
		}
		return data.PapersByProgram(program), nil
	case strings.HasPrefix(name, "track_"):
		program, trackID, ok := strings.Cut(strings.TrimPrefix(name, "track_"), "_")
		if !ok {
			return nil, fmt.Errorf("%w: track %q", sitedata.ErrNotFound, name)
		}
		papers := data.TrackPapers(program, trackID)
		if len(papers) < 1 {
			return nil, fmt.Errorf("%w: track %q of program %q", sitedata.ErrNotFound, trackID, program)
		}
		return papers, nil
	}
	return nil, fmt.Errorf("%w: document %q", sitedata.ErrNotFound, name)
}

// Paths returns the path of every Document on the site, sorted.
func (r *Router) Paths() []string {
	data := r.site.Data
	paths := []string{
		"index.html",
		"papers.html",
		"plenary_sessions.html",
		"tutorials.html",
		"workshops.html",
		"schedule.html",
		"sessions.html",
		"organizers.html",
		"sponsors.html",
		"socials.html",
		"papers.json",
		"calendar.json",
	}
	for name := range data.Pages {
		if _, err := r.page(name); err != nil {
			continue
		}
		paths = append(paths, name+".html")
	}
	for _, paper := range data.Papers {
		paths = append(paths, "paper_"+paper.ID+".html")
	}
	for _, plenary := range data.PlenarySessions {
		paths = append(paths, "plenary_session_"+plenary.ID+".html")
	}
	for _, tutorial := range data.Tutorials {
		paths = append(paths, "tutorial_"+tutorial.ID+".html")
	}
	for _, workshop := range data.Workshops {
		paths = append(paths, "workshop_"+workshop.ID+".html")
	}
	for _, sponsor := range data.Sponsors {
		paths = append(paths, "sponsor_"+sponsor.ID+".html")
	}
	for program, tracks := range data.Tracks {
		paths = append(paths, "papers_"+program+".json")
		for _, track := range tracks {
			paths = append(paths, "track_"+program+"_"+sitedata.NameToID(track)+".json")
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}
