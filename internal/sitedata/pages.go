package sitedata

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// markdown is safe to share; every Convert call gets its own parser state.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

type sectionMeta struct {
	Title string `yaml:"title"`
	Order int    `yaml:"order"`
}

// loadPage reads every markdown file in the entry's directory into a single
// Page. Sections are ordered by their front matter order, then by file name.
func loadPage(fsys fs.FS, entry ConfigEntry, groupTitle string) (*Page, error) {
	files, err := fs.ReadDir(fsys, entry.Path)
	if err != nil {
		return nil, fileError(entry.Path, err)
	}
	page := &Page{
		Name:  entry.Name,
		Title: entry.Title,
	}
	if page.Title == "" {
		page.Title = groupTitle
	}
	if page.Title == "" {
		page.Title = titleCase(entry.Name)
	}
	for _, file := range files {
		if file.IsDir() || path.Ext(file.Name()) != ".md" {
			continue
		}
		name := path.Join(entry.Path, file.Name())
		section, err := loadSection(fsys, name)
		if err != nil {
			return nil, err
		}
		page.Sections = append(page.Sections, section)
	}
	if len(page.Sections) < 1 {
		return nil, fmt.Errorf("%w: no markdown files in %s", ErrFileNotFound, entry.Path)
	}
	sort.SliceStable(page.Sections, func(i, j int) bool {
		return page.Sections[i].Order < page.Sections[j].Order
	})
	return page, nil
}

func loadSection(fsys fs.FS, name string) (Section, error) {
	data, err := readFile(fsys, name)
	if err != nil {
		return Section{}, err
	}
	var meta sectionMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Section{}, fmt.Errorf("%w: %s: front matter: %w", ErrParse, name, err)
	}
	var out bytes.Buffer
	if err := markdown.Convert(body, &out); err != nil {
		return Section{}, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	slug := strings.TrimSuffix(path.Base(name), ".md")
	title := meta.Title
	if title == "" {
		title = titleCase(slug)
	}
	return Section{
		Slug:  slug,
		Title: title,
		Order: meta.Order,
		Body:  template.HTML(out.String()), // #nosec G203 -- rendered from the site's own markdown
	}, nil
}

var titleReplacer = strings.NewReplacer("-", " ", "_", " ")

// titleCase turns a file or entry name into a heading: "code-of-conduct"
// becomes "Code Of Conduct".
func titleCase(name string) string {
	return cases.Title(language.English).String(titleReplacer.Replace(name))
}
