package render_test

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"testing/fstest"

	"impractical.co/miniconf/internal/logging"
	"impractical.co/miniconf/internal/render"
)

type exampleSite struct {
	// anonymously embedding a *CachedSite makes exampleSite a Site
	// implementation
	*render.CachedSite

	// a configurable title for our site
	Title string
}

type homePage struct {
	Layout baseLayout
	Talks  int
}

func (homePage) Templates(_ context.Context) []string {
	return []string{"home.html.tmpl"}
}

func (h homePage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{
		h.Layout,
	}
}

func (homePage) Key(_ context.Context) string {
	return "home.html.tmpl"
}

func (h homePage) ExecutedTemplate(_ context.Context) string {
	return h.Layout.BaseTemplate()
}

func (homePage) EmbedCSS(_ context.Context) template.CSS {
	return "body { color: red; }"
}

func (homePage) LinkJS(_ context.Context) []render.JSLink {
	return []render.JSLink{
		{Src: "https://slideslive.com/embed_presentation.js", PlaceInFooter: true},
	}
}

type baseLayout struct{}

func (b baseLayout) Templates(_ context.Context) []string {
	return []string{b.BaseTemplate()}
}

func (baseLayout) BaseTemplate() string {
	return "base.html.tmpl"
}

func (baseLayout) LinkCSS(_ context.Context) []render.CSSLink {
	return []render.CSSLink{
		{Href: "static/css/bootstrap.min.css"},
		{Href: "static/css/main.css"},
	}
}

func ExampleRender() {
	// normally you'd use something like embed.FS or os.DirFS for this
	// for example purposes, we're just hardcoding values
	templates := fstest.MapFS{
		"home.html.tmpl": {Data: []byte(`{{ define "body" }}{{ .Page.Talks }} talks today.{{ end }}`)},
		"base.html.tmpl": {Data: []byte(`<title>{{ .Site.Title }}</title>
{{ range .LinkedCSS }}<link rel="stylesheet" href="{{ .Href }}">
{{ end }}<style>{{ .EmbeddedCSS }}</style>
{{ block "body" . }}{{ end }}
{{ range .FooterJS }}<script src="{{ .Src }}"></script>{{ end }}`)},
	}

	// usually the context comes from the request, but here we're
	// building it from scratch and adding a logger
	ctx := logging.WithLogger(context.Background(), slog.Default())

	site := exampleSite{
		CachedSite: render.NewCachedSite(templates),
		Title:      "ACL 2023",
	}
	page := homePage{Layout: baseLayout{}, Talks: 3}
	render.Render(ctx, os.Stdout, site, page)

	// Output:
	// <title>ACL 2023</title>
	// <link rel="stylesheet" href="static/css/bootstrap.min.css">
	// <link rel="stylesheet" href="static/css/main.css">
	// <style>
	// /* embedded CSS from render_test.homePage */
	// body { color: red; }</style>
	// 3 talks today.
	// <script src="https://slideslive.com/embed_presentation.js"></script>
}
