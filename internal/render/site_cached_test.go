package render_test

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"impractical.co/miniconf/internal/logging"
	"impractical.co/miniconf/internal/render"
)

type cachedSiteFoo struct{}

func (cachedSiteFoo) Templates(_ context.Context) []string {
	return []string{"base.tmpl", "foo.tmpl"}
}

func (cachedSiteFoo) Key(_ context.Context) string {
	return "foo.tmpl"
}

func (cachedSiteFoo) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

type cachedSiteBar struct {
	IncludeBaz bool
}

func (bar cachedSiteBar) Templates(_ context.Context) []string {
	templates := []string{"base.tmpl", "bar.tmpl"}
	if bar.IncludeBaz {
		templates = append(templates, "baz.tmpl")
	}
	return templates
}

func (bar cachedSiteBar) Key(_ context.Context) string {
	if bar.IncludeBaz {
		return "bar.tmpl+baz.tmpl"
	}
	return "bar.tmpl"
}

func (cachedSiteBar) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

func cachedSiteTemplates() fstest.MapFS {
	return fstest.MapFS{
		"foo.tmpl": {
			Data: []byte(`{{ define "template_name" }}foo.tmpl{{ end }}`),
		},
		"bar.tmpl": {
			Data: []byte(`{{ define "template_name" }}bar.tmpl{{ if .Page.IncludeBaz }} {{ block "variable_include" . }}{{ end }}{{ end }}{{ end }}`),
		},
		"baz.tmpl": {
			Data: []byte(`{{ define "variable_include" }}included baz.tmpl{{ end }}`),
		},
		"base.tmpl": {
			Data: []byte(`{{ block "template_name" . }}base.tmpl{{ end }}`),
		},
	}
}

func TestCachedSite(t *testing.T) {
	t.Parallel()

	ctx := logging.WithLogger(context.Background(), slog.Default())
	templateFS := cachedSiteTemplates()
	site := render.NewCachedSite(templateFS)
	renderChangeAndRerender(t, ctx, templateFS, cachedSiteFoo{}, site, "foo.tmpl", "foo.tmpl")
	renderChangeAndRerender(t, ctx, templateFS, cachedSiteBar{}, site, "bar.tmpl", "bar.tmpl")
	renderChangeAndRerender(t, ctx, templateFS, cachedSiteBar{IncludeBaz: true}, site, "bar.tmpl", "bar.tmpl included baz.tmpl")
}

func renderChangeAndRerender(t *testing.T, ctx context.Context, fs fstest.MapFS, page render.Renderable, site render.Site, file, expected string) {
	t.Helper()

	var out bytes.Buffer
	render.Render(ctx, &out, site, page)
	if output := out.String(); output != expected {
		t.Errorf("Expected to get %q, got %q", expected, output)
	}
	out.Reset()
	oldData := slices.Clone(fs[file].Data)
	fs[file].Data = []byte(strings.ReplaceAll(string(fs[file].Data), expected, "changed-"+expected))
	render.Render(ctx, &out, site, page)
	if output := out.String(); output != expected {
		t.Errorf("Expected to get %q after modifying underlying data, got %q", expected, output)
	}
	fs[file].Data = oldData
}
