package render_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"impractical.co/miniconf/internal/render"
)

type brokenPage struct{}

func (brokenPage) Templates(_ context.Context) []string {
	return []string{"missing/*.tmpl"}
}

func (brokenPage) Key(_ context.Context) string {
	return "broken"
}

func (brokenPage) ExecutedTemplate(_ context.Context) string {
	return "missing"
}

type failingPage struct{}

func (failingPage) Templates(_ context.Context) []string {
	return []string{"failing.tmpl"}
}

func (failingPage) Key(_ context.Context) string {
	return "failing"
}

func (failingPage) ExecutedTemplate(_ context.Context) string {
	return "failing.tmpl"
}

type errorPage struct {
	Err error
}

func (errorPage) Templates(_ context.Context) []string {
	return []string{"error.tmpl"}
}

func (errorPage) Key(_ context.Context) string {
	return "error"
}

func (errorPage) ExecutedTemplate(_ context.Context) string {
	return "error.tmpl"
}

type erroringSite struct {
	*render.CachedSite
}

func (erroringSite) ServerErrorPage(_ context.Context, err error) render.Renderable {
	return errorPage{Err: err}
}

var errorTemplates = fstest.MapFS{
	"failing.tmpl": {Data: []byte(`partial output {{ .Page.Nope }}`)},
	"error.tmpl":   {Data: []byte(`Something went wrong.`)},
}

func TestExecuteErrors(t *testing.T) {
	t.Parallel()

	site := render.NewCachedSite(errorTemplates)

	var out bytes.Buffer
	err := render.Execute(context.Background(), &out, site, brokenPage{})
	if !errors.Is(err, render.ErrTemplatePatternMatchesNoFiles) {
		t.Errorf("expected %v, got %v", render.ErrTemplatePatternMatchesNoFiles, err)
	}

	err = render.Execute(context.Background(), &out, site, failingPage{})
	if err == nil {
		t.Error("expected an error executing a template referencing a missing field")
	}
	if out.Len() > 0 {
		t.Errorf("expected nothing written for a failed page, got %q", out.String())
	}
}

func TestRenderFallsBackToServerErrorPage(t *testing.T) {
	t.Parallel()

	site := erroringSite{CachedSite: render.NewCachedSite(errorTemplates)}
	var out bytes.Buffer
	render.Render(context.Background(), &out, site, failingPage{})
	if got := out.String(); got != "Something went wrong." {
		t.Errorf("expected the server error page, got %q", got)
	}
}

func TestRenderFallsBackToMessage(t *testing.T) {
	t.Parallel()

	site := render.NewCachedSite(errorTemplates)
	var out bytes.Buffer
	render.Render(context.Background(), &out, site, brokenPage{})
	if got := out.String(); got != "Server error." {
		t.Errorf("expected the server error message, got %q", got)
	}
}
