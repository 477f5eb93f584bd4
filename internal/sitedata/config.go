package sitedata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path"
	"strings"
	"time"
	_ "time/tzdata" // conference timezones resolve without system zoneinfo

	"gopkg.in/yaml.v3"
)

const (
	configsDir       = "configs"
	globalConfigFile = "config.yml"
)

// ContentType says how a config entry's file should be read.
type ContentType string

const (
	// ContentRecords entries point at a data file holding a list of
	// records.
	ContentRecords ContentType = "records"

	// ContentMarkdown entries point at a directory of markdown files
	// making up a single Page.
	ContentMarkdown ContentType = "markdown"
)

// Kind is the type of record a ContentRecords entry holds.
type Kind string

const (
	KindPaper          Kind = "paper"
	KindPlenarySession Kind = "plenary_session"
	KindPlenaryVideo   Kind = "plenary_video"
	KindTutorial       Kind = "tutorial"
	KindWorkshop       Kind = "workshop"
	KindSession        Kind = "session"
	KindCommittee      Kind = "committee"
	KindSocial         Kind = "social"
	KindSponsor        Kind = "sponsor"
)

func (k Kind) valid() bool {
	switch k {
	case KindPaper, KindPlenarySession, KindPlenaryVideo, KindTutorial,
		KindWorkshop, KindSession, KindCommittee, KindSocial, KindSponsor:
		return true
	}
	return false
}

// ConfigEntry describes where the data for part of the site lives. Entries
// are read from the configs directory, one file per group of pages.
type ConfigEntry struct {
	// Group is the name of the configs file the entry came from, without
	// its extension.
	Group   string      `yaml:"-" json:"group"`
	Name    string      `yaml:"name" json:"name"`
	Path    string      `yaml:"path" json:"path"`
	Content ContentType `yaml:"content" json:"content"`
	Kind    Kind        `yaml:"kind,omitempty" json:"kind,omitempty"`
	Title   string      `yaml:"title,omitempty" json:"title,omitempty"`
}

type configGroup struct {
	Title   string        `yaml:"title"`
	Entries []ConfigEntry `yaml:"entries"`
}

// AwardVideos are the two pre-recorded videos shown on an award session's
// page.
type AwardVideos struct {
	// Intro is the SlidesLive presentation introducing the award.
	Intro string `yaml:"intro" json:"intro"`

	// Talk is the SlidesLive presentation of the awardee. When empty, the
	// session's own presentation id is used.
	Talk string `yaml:"talk,omitempty" json:"talk,omitempty"`
}

// Overrides are the fixed lookup tables consulted when laying out plenary
// session pages.
type Overrides struct {
	// ChatChannels maps plenary session ids to the Rocket.Chat channel
	// shown next to their videos, for sessions whose channel isn't named
	// after their id.
	ChatChannels map[string]string `yaml:"chat_channels" json:"chat_channels"`

	// AwardVideos maps the ids of award sessions to their videos. Award
	// sessions get a two-video layout instead of the regular one.
	AwardVideos map[string]AwardVideos `yaml:"award_videos" json:"award_videos"`
}

// DefaultOverrides returns the built-in override tables. Configured tables
// are merged over these.
func DefaultOverrides() Overrides {
	return Overrides{
		ChatChannels: map[string]string{
			"two-paths-to-intelligence": "paper-event_keynote-1_-geoffrey-hinton",
		},
		AwardVideos: map[string]AwardVideos{
			"lifetime_achievement_award":  {Intro: "38929471"},
			"distinguished_service_award": {Intro: "38929470"},
		},
	}
}

// Merge returns a copy of o with every entry of other added, replacing
// entries with the same id.
func (o Overrides) Merge(other Overrides) Overrides {
	res := Overrides{
		ChatChannels: map[string]string{},
		AwardVideos:  map[string]AwardVideos{},
	}
	maps.Copy(res.ChatChannels, o.ChatChannels)
	maps.Copy(res.ChatChannels, other.ChatChannels)
	maps.Copy(res.AwardVideos, o.AwardVideos)
	maps.Copy(res.AwardVideos, other.AwardVideos)
	return res
}

// ChatChannel returns the chat channel for the plenary session with the
// passed id: the override if there is one, the id itself if not.
func (o Overrides) ChatChannel(id string) string {
	if channel, ok := o.ChatChannels[id]; ok && channel != "" {
		return channel
	}
	return id
}

// Award returns the award videos for the session with the passed id, and
// whether the session is an award session at all.
func (o Overrides) Award(id string) (AwardVideos, bool) {
	award, ok := o.AwardVideos[id]
	return award, ok
}

// DefaultSponsorLevels returns the sponsorship levels used when config.yml
// doesn't list any.
func DefaultSponsorLevels() []string {
	return []string{
		"Diamond",
		"Platinum",
		"Gold",
		"Silver",
		"Bronze",
		"Supporter",
		"Publisher",
		"Diversity & Inclusion: Champion",
		"Diversity & Inclusion: In-Kind",
	}
}

// Config is the site-wide configuration from configs/config.yml. It's
// available to every template.
type Config struct {
	SiteTitle string `yaml:"site_title" json:"site_title"`

	// ChatServer is the hostname of the Rocket.Chat server embedded in
	// session pages.
	ChatServer      string `yaml:"chat_server" json:"chat_server"`
	PaperImagesPath string `yaml:"paper_images_path" json:"paper_images_path"`

	// Timezone is the IANA name of the conference's timezone. Timestamps
	// without an offset are read in it. Defaults to UTC.
	Timezone string `yaml:"conference_timezone" json:"conference_timezone"`

	// Programs lists the paper programs, in display order. When empty,
	// the programs of the loaded papers are used, sorted by name.
	Programs  []string  `yaml:"programs" json:"programs"`
	Overrides Overrides `yaml:"overrides" json:"overrides"`

	// SponsorLevels lists the sponsorship levels, highest first. Sponsors
	// naming any other level are rejected. Defaults to
	// DefaultSponsorLevels.
	SponsorLevels []string `yaml:"sponsor_levels" json:"sponsor_levels"`

	// Extra holds any other keys of config.yml, for templates to use.
	Extra map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// Location returns the conference's timezone.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func readConfig(fsys fs.FS) (Config, error) {
	name := path.Join(configsDir, globalConfigFile)
	data, err := readFile(fsys, name)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := decodeYAML(data, &cfg, false); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return Config{}, fmt.Errorf("%w: %s: conference_timezone: %w", ErrParse, name, err)
		}
	}
	cfg.Overrides = DefaultOverrides().Merge(cfg.Overrides)
	if len(cfg.SponsorLevels) < 1 {
		cfg.SponsorLevels = DefaultSponsorLevels()
	}
	return cfg, nil
}

// readEntries reads every configs file other than config.yml, in file name
// order, and returns their entries along with the title of each group.
func readEntries(fsys fs.FS) ([]ConfigEntry, map[string]string, error) {
	files, err := fs.ReadDir(fsys, configsDir)
	if err != nil {
		return nil, nil, fileError(configsDir, err)
	}
	var entries []ConfigEntry
	titles := map[string]string{}
	seen := map[string]string{}
	for _, file := range files {
		ext := path.Ext(file.Name())
		if file.IsDir() || (ext != ".yml" && ext != ".yaml") || file.Name() == globalConfigFile {
			continue
		}
		name := path.Join(configsDir, file.Name())
		data, err := readFile(fsys, name)
		if err != nil {
			return nil, nil, err
		}
		var group configGroup
		if err := decodeYAML(data, &group, true); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
		}
		groupName := strings.TrimSuffix(file.Name(), ext)
		titles[groupName] = group.Title
		for _, entry := range group.Entries {
			entry.Group = groupName
			if err := validateEntry(entry); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			entry.Path = path.Clean(entry.Path)
			if prev, ok := seen[entry.Name]; ok {
				return nil, nil, fmt.Errorf("%w: entry %q in %s was already declared in %s", ErrDuplicateKey, entry.Name, name, prev)
			}
			seen[entry.Name] = name
			entries = append(entries, entry)
		}
	}
	return entries, titles, nil
}

func validateEntry(entry ConfigEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("%w: entry without a name", ErrParse)
	}
	if entry.Path == "" || !fs.ValidPath(path.Clean(entry.Path)) {
		return fmt.Errorf("%w: entry %q: invalid path %q", ErrParse, entry.Name, entry.Path)
	}
	switch entry.Content {
	case ContentMarkdown:
		return nil
	case ContentRecords:
		if !entry.Kind.valid() {
			return fmt.Errorf("%w: entry %q: unknown kind %q", ErrParse, entry.Name, entry.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: entry %q: unknown content type %q", ErrParse, entry.Name, entry.Content)
	}
}

// decodeYAML decodes a single YAML document into out. An empty document
// leaves out untouched.
func decodeYAML(data []byte, out any, strict bool) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	err := dec.Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func readFile(fsys fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fileError(name, err)
	}
	return data, nil
}

func fileError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return fmt.Errorf("reading %s: %w", name, err)
}
