// Package pages renders the conference website: one Renderable per page of
// the site, the layout decisions for plenary sessions, and a Router mapping
// URL paths to pages and JSON documents.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strings"

	"impractical.co/miniconf/internal/render"
	"impractical.co/miniconf/internal/sitedata"
)

//go:embed templates
var embedded embed.FS

// DefaultTemplates returns the templates compiled into the binary.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// the directory is embedded, so this can only fail if the
		// go:embed directive above changes
		panic(fmt.Sprintf("templates missing from binary: %s", err))
	}
	return sub
}

// NavItem is a link in the navbar.
type NavItem struct {
	Key   string
	Title string
	URL   string
}

var (
	_ render.Site             = &Site{}
	_ render.FuncMapExtender  = &Site{}
	_ render.ServerErrorPager = &Site{}
	_ render.NotFoundPager    = &Site{}
)

// Site is the render.Site every page of the conference website is rendered
// with. It holds the loaded data, which is never modified, so a Site can be
// shared by concurrent requests.
type Site struct {
	*render.CachedSite

	Data *sitedata.Site

	// Overrides are the lookup tables the plenary session layout is
	// decided with.
	Overrides sitedata.Overrides

	Nav []NavItem
}

// New returns a Site rendering data with the templates in templates. Pass
// DefaultTemplates() unless the templates are being customised.
func New(data *sitedata.Site, templates fs.FS) *Site {
	return &Site{
		CachedSite: render.NewCachedSite(templates),
		Data:       data,
		Overrides:  data.Config.Overrides,
		Nav:        navItems(data),
	}
}

func navItems(data *sitedata.Site) []NavItem {
	var items []NavItem
	if _, err := data.Page("about"); err == nil {
		items = append(items, NavItem{Key: "about", Title: "About", URL: "about.html"})
	}
	items = append(items,
		NavItem{Key: "schedule", Title: "Schedule", URL: "schedule.html"},
		NavItem{Key: "plenary_sessions", Title: "Plenary Sessions", URL: "plenary_sessions.html"},
		NavItem{Key: "sessions", Title: "Sessions", URL: "sessions.html"},
		NavItem{Key: "papers", Title: "Papers", URL: "papers.html"},
	)
	if len(data.Tutorials) > 0 {
		items = append(items, NavItem{Key: "tutorials", Title: "Tutorials", URL: "tutorials.html"})
	}
	if len(data.Workshops) > 0 {
		items = append(items, NavItem{Key: "workshops", Title: "Workshops", URL: "workshops.html"})
	}
	if len(data.Socials) > 0 {
		items = append(items, NavItem{Key: "socials", Title: "Socials", URL: "socials.html"})
	}
	if len(data.Sponsors) > 0 {
		items = append(items, NavItem{Key: "sponsors", Title: "Sponsors", URL: "sponsors.html"})
	}
	if len(data.Committee) > 0 {
		items = append(items, NavItem{Key: "organizers", Title: "Organizers", URL: "organizers.html"})
	}
	return items
}

// ChatURL returns the URL of the embedded Rocket.Chat view of channel.
func (s *Site) ChatURL(channel string) string {
	return fmt.Sprintf("https://%s/channel/%s?layout=embedded", s.Data.Config.ChatServer, url.PathEscape(channel))
}

// FuncMap returns the functions every template can use.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"join":      strings.Join,
		"quotePlus": url.QueryEscape,
		"nameToID":  sitedata.NameToID,
		"chatURL":   s.ChatURL,
	}
}

// ServerErrorPage is rendered in place of a page that failed to render.
func (s *Site) ServerErrorPage(_ context.Context, err error) render.Renderable {
	return ServerErrorPage{Frame: Frame{Title: "Server error"}, Err: err}
}

// NotFoundPage is rendered for paths and ids that don't exist.
func (s *Site) NotFoundPage(_ context.Context, path string) render.Renderable {
	return NotFoundPage{Frame: Frame{Title: "Page not found"}, Path: path}
}
