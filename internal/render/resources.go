package render

import (
	"context"
	"encoding/hex"
	"fmt"
	"html/template"

	"github.com/zeebo/blake3"
)

// JSLink is a script loaded through a <script> tag with a src attribute.
type JSLink struct {
	// Src is the URL of the script.
	Src string

	// PlaceInFooter loads the script at the end of the document's body
	// instead of in its head.
	PlaceInFooter bool

	// Async sets the async attribute on the script tag.
	Async bool

	// After lists the Src of scripts that must be loaded before this one,
	// if they're on the page at all.
	After []string

	// DisableImplicitOrdering stops the script from being ordered after
	// the script its Component listed before it.
	DisableImplicitOrdering bool
}

func (j JSLink) resourceKey() string     { return j.Src }
func (j JSLink) resourceAfter() []string { return j.After }
func (j JSLink) implicitOrder() bool     { return !j.DisableImplicitOrdering }

// CSSLink is a stylesheet loaded through a <link> element.
type CSSLink struct {
	// Href is the URL of the stylesheet.
	Href string

	// After lists the Href of stylesheets that must be loaded before this
	// one, if they're on the page at all.
	After []string

	// DisableImplicitOrdering stops the stylesheet from being ordered
	// after the stylesheet its Component listed before it.
	DisableImplicitOrdering bool
}

func (c CSSLink) resourceKey() string     { return c.Href }
func (c CSSLink) resourceAfter() []string { return c.After }
func (c CSSLink) implicitOrder() bool     { return !c.DisableImplicitOrdering }

// JSEmbedder is an interface that Components can fulfill to include some
// JavaScript that should be embedded directly into the rendered HTML. The
// contents will be made available to the template as .EmbeddedJS.
type JSEmbedder interface {
	// EmbedJS returns the JavaScript, without <script> tags, that should
	// be embedded directly in the output HTML.
	EmbedJS(context.Context) template.JS
}

// JSLinker is an interface that Components can fulfill to include some
// JavaScript that should be loaded separately from the HTML document. The
// scripts will be made available to the template as .HeadJS and .FooterJS.
type JSLinker interface {
	// LinkJS returns the scripts that should be linked to from the output
	// HTML, in the order the Component needs them loaded.
	LinkJS(context.Context) []JSLink
}

// CSSEmbedder is an interface that Components can fulfill to include some CSS
// that should be embedded directly into the rendered HTML. The contents will
// be made available to the template as .EmbeddedCSS.
type CSSEmbedder interface {
	// EmbedCSS returns the CSS, without <style> tags, that should be
	// embedded directly in the output HTML.
	EmbedCSS(context.Context) template.CSS
}

// CSSLinker is an interface that Components can fulfill to include some CSS
// that should be loaded through a <link> element in the template. The
// stylesheets will be made available to the template as .LinkedCSS.
type CSSLinker interface {
	// LinkCSS returns the stylesheets that should be linked to from the
	// output HTML, in the order the Component needs them loaded.
	LinkCSS(context.Context) []CSSLink
}

func checksum(contents string) string {
	sum := blake3.Sum256([]byte(contents))
	return hex.EncodeToString(sum[:])
}

func getComponentJSEmbeds(ctx context.Context, component Component) template.JS {
	var results template.JS
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		embed, ok := comp.(JSEmbedder)
		if !ok {
			continue
		}
		script := embed.EmbedJS(ctx)
		if script == "" {
			continue
		}
		sum := checksum(string(script))
		if _, ok := seen[sum]; ok {
			continue
		}
		seen[sum] = struct{}{}
		results += template.JS(fmt.Sprintf(`
/* embedded JavaScript from %T */
%s`, comp, script)) // #nosec G203
	}
	return results
}

func getComponentCSSEmbeds(ctx context.Context, component Component) template.CSS {
	var results template.CSS
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		embed, ok := comp.(CSSEmbedder)
		if !ok {
			continue
		}
		css := embed.EmbedCSS(ctx)
		if css == "" {
			continue
		}
		sum := checksum(string(css))
		if _, ok := seen[sum]; ok {
			continue
		}
		seen[sum] = struct{}{}
		results += template.CSS(fmt.Sprintf(`
/* embedded CSS from %T */
%s`, comp, css)) // #nosec G203
	}
	return results
}

// getComponentJSLinks returns the scripts of every JSLinker in the
// component's tree, split into head and footer scripts, each in dependency
// order.
func getComponentJSLinks(ctx context.Context, component Component) ([]JSLink, []JSLink, error) {
	var head, foot [][]JSLink
	for _, comp := range getRecursiveComponents(ctx, component) {
		linker, ok := comp.(JSLinker)
		if !ok {
			continue
		}
		var compHead, compFoot []JSLink
		for _, link := range linker.LinkJS(ctx) {
			if link.PlaceInFooter {
				compFoot = append(compFoot, link)
			} else {
				compHead = append(compHead, link)
			}
		}
		head = append(head, compHead)
		foot = append(foot, compFoot)
	}
	headJS, err := walkGraph(ctx, buildGraph(head))
	if err != nil {
		return nil, nil, err
	}
	footJS, err := walkGraph(ctx, buildGraph(foot))
	if err != nil {
		return nil, nil, err
	}
	return headJS, footJS, nil
}

func getComponentCSSLinks(ctx context.Context, component Component) ([]CSSLink, error) {
	var links [][]CSSLink
	for _, comp := range getRecursiveComponents(ctx, component) {
		linker, ok := comp.(CSSLinker)
		if !ok {
			continue
		}
		links = append(links, linker.LinkCSS(ctx))
	}
	return walkGraph(ctx, buildGraph(links))
}
