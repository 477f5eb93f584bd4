package render_test

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"impractical.co/miniconf/internal/render"
)

type scriptsComponent struct {
	name    string
	scripts []render.JSLink
	styles  []render.CSSLink
	embed   template.JS
	uses    []render.Component
}

func (s scriptsComponent) Templates(_ context.Context) []string {
	return []string{"scripts.tmpl"}
}

func (s scriptsComponent) UseComponents(_ context.Context) []render.Component {
	return s.uses
}

func (s scriptsComponent) LinkJS(_ context.Context) []render.JSLink {
	return s.scripts
}

func (s scriptsComponent) LinkCSS(_ context.Context) []render.CSSLink {
	return s.styles
}

func (s scriptsComponent) EmbedJS(_ context.Context) template.JS {
	return s.embed
}

func (s scriptsComponent) Key(_ context.Context) string {
	return "scripts-" + s.name
}

func (s scriptsComponent) ExecutedTemplate(_ context.Context) string {
	return "scripts.tmpl"
}

var scriptsTemplates = fstest.MapFS{
	"scripts.tmpl": {Data: []byte(`{{ range .HeadJS }}head:{{ .Src }}
{{ end }}{{ range .FooterJS }}foot:{{ .Src }}
{{ end }}{{ range .LinkedCSS }}css:{{ .Href }}
{{ end }}<script>{{ .EmbeddedJS }}</script>`)},
}

func TestResourceOrdering(t *testing.T) {
	t.Parallel()

	type testCase struct {
		page    scriptsComponent
		want    string
		wantErr error
	}

	tests := map[string]testCase{
		"component-order-preserved": {
			page: scriptsComponent{
				name: "order",
				scripts: []render.JSLink{
					{Src: "jquery.js"},
					{Src: "bootstrap.js"},
				},
			},
			want: "head:jquery.js\nhead:bootstrap.js\n",
		},
		"independent-components-sorted": {
			page: scriptsComponent{
				name:    "sorted",
				scripts: []render.JSLink{{Src: "b.js"}},
				uses: []render.Component{
					scriptsComponent{scripts: []render.JSLink{{Src: "a.js"}}},
				},
			},
			want: "head:a.js\nhead:b.js\n",
		},
		"explicit-after": {
			page: scriptsComponent{
				name: "after",
				scripts: []render.JSLink{
					{Src: "schedule.js", After: []string{"fullcalendar.js", "not-on-the-page.js"}},
				},
				uses: []render.Component{
					scriptsComponent{scripts: []render.JSLink{{Src: "fullcalendar.js"}}},
				},
			},
			want: "head:fullcalendar.js\nhead:schedule.js\n",
		},
		"footer-split": {
			page: scriptsComponent{
				name: "footer",
				scripts: []render.JSLink{
					{Src: "https://slideslive.com/embed_presentation.js", PlaceInFooter: true},
					{Src: "jquery.js"},
				},
			},
			want: "head:jquery.js\nfoot:https://slideslive.com/embed_presentation.js\n",
		},
		"duplicates-collapsed": {
			page: scriptsComponent{
				name:    "dupes",
				scripts: []render.JSLink{{Src: "jquery.js"}},
				styles:  []render.CSSLink{{Href: "main.css"}},
				uses: []render.Component{
					scriptsComponent{
						scripts: []render.JSLink{{Src: "jquery.js"}},
						styles:  []render.CSSLink{{Href: "main.css"}},
					},
				},
			},
			want: "head:jquery.js\ncss:main.css\n",
		},
		"cycle": {
			page: scriptsComponent{
				name: "cycle",
				scripts: []render.JSLink{
					{Src: "a.js", After: []string{"b.js"}},
					{Src: "b.js"},
				},
			},
			wantErr: render.ErrResourceCycle,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			site := render.NewCachedSite(scriptsTemplates)
			var out bytes.Buffer
			err := render.Execute(context.Background(), &out, site, test.page)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected error %v, got %v", test.wantErr, err)
			}
			if test.wantErr != nil {
				if out.Len() > 0 {
					t.Errorf("expected no output on error, got %q", out.String())
				}
				return
			}
			got := strings.TrimSuffix(out.String(), "<script></script>")
			if got != test.want {
				t.Errorf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestEmbeddedJSDeduplicated(t *testing.T) {
	t.Parallel()

	page := scriptsComponent{
		name:  "embeds",
		embed: "var a = 1;",
		uses: []render.Component{
			scriptsComponent{embed: "var a = 1;"},
			scriptsComponent{embed: "var b = 2;"},
		},
	}
	var out bytes.Buffer
	err := render.Execute(context.Background(), &out, render.NewCachedSite(scriptsTemplates), page)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := strings.Count(out.String(), "var a = 1;"); got != 1 {
		t.Errorf("expected the duplicate script once, got it %d times in %q", got, out.String())
	}
	if !strings.Contains(out.String(), "var b = 2;") {
		t.Errorf("expected the second script, got %q", out.String())
	}
}
