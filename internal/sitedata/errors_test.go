package sitedata_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"impractical.co/miniconf/internal/sitedata"
)

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	type testCase struct {
		modify func(fstest.MapFS)
		want   error
	}

	tests := map[string]testCase{
		"no-configs-dir": {
			modify: func(fsys fstest.MapFS) {
				for name := range fsys {
					if strings.HasPrefix(name, "configs/") {
						delete(fsys, name)
					}
				}
			},
			want: sitedata.ErrFileNotFound,
		},
		"missing-data-file": {
			modify: func(fsys fstest.MapFS) {
				delete(fsys, "data/workshops.yml")
			},
			want: sitedata.ErrFileNotFound,
		},
		"missing-page-dir": {
			modify: func(fsys fstest.MapFS) {
				delete(fsys, "pages/about/overview.md")
				delete(fsys, "pages/about/code-of-conduct.md")
			},
			want: sitedata.ErrFileNotFound,
		},
		"malformed-yaml": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/tutorials.yml"] = file("- id: T1\n  title: [unterminated\n")
			},
			want: sitedata.ErrParse,
		},
		"malformed-json": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/papers.jsonc"] = file(`[{"UID": "1",`)
			},
			want: sitedata.ErrParse,
		},
		"malformed-csv": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/plenary_videos.csv"] = file("UID,session\nvideo-1,two-paths-to-intelligence,extra\n")
			},
			want: sitedata.ErrParse,
		},
		"unknown-kind": {
			modify: func(fsys fstest.MapFS) {
				fsys["configs/extra.yml"] = file(`entries:
  - name: raffles
    path: data/raffles.yml
    content: records
    kind: raffle
`)
			},
			want: sitedata.ErrParse,
		},
		"unknown-config-field": {
			modify: func(fsys fstest.MapFS) {
				fsys["configs/extra.yml"] = file(`entries:
  - name: sponsors
    file: data/sponsors.yml
`)
			},
			want: sitedata.ErrParse,
		},
		"bad-timestamp": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/workshops.yml"] = file(`- id: W1
  sessions:
    - start_time: next tuesday
      end_time: "2023-07-13T17:00:00"
`)
			},
			want: sitedata.ErrParse,
		},
		"bad-timezone": {
			modify: func(fsys fstest.MapFS) {
				fsys["configs/config.yml"] = file("conference_timezone: Mars/Olympus_Mons\n")
			},
			want: sitedata.ErrParse,
		},
		"record-without-id": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/workshops.yml"] = file("- title: Anonymous\n")
			},
			want: sitedata.ErrParse,
		},
		"duplicate-paper": {
			modify: func(fsys fstest.MapFS) {
				fsys["configs/more.yml"] = file(`entries:
  - name: more_papers
    path: data/more_papers.yml
    content: records
    kind: paper
`)
				fsys["data/more_papers.yml"] = file("- UID: 2023.acl-long.1\n  title: Same id\n")
			},
			want: sitedata.ErrDuplicateKey,
		},
		"duplicate-within-file": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/workshops.yml"] = file("- id: W1\n- id: W1\n")
			},
			want: sitedata.ErrDuplicateKey,
		},
		"duplicate-event": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/sessions.yml"] = file(`- id: s1
  events: [{id: e1}]
- id: s2
  events: [{id: e1}]
`)
				fsys["data/papers.jsonc"] = file("[]")
			},
			want: sitedata.ErrDuplicateKey,
		},
		"duplicate-entry-name": {
			modify: func(fsys fstest.MapFS) {
				fsys["configs/more.yml"] = file(`entries:
  - name: about
    path: pages/about
    content: markdown
`)
			},
			want: sitedata.ErrDuplicateKey,
		},
		"video-for-unknown-plenary": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/plenary_videos.csv"] = file("UID,session\nvideo-1,keynote-99\n")
			},
			want: sitedata.ErrNotFound,
		},
		"unknown-similar-paper": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/papers.jsonc"] = file(`[{"UID": "1", "similar_paper_ids": ["2"]}]`)
				fsys["data/sessions.yml"] = file("[]")
			},
			want: sitedata.ErrNotFound,
		},
		"unknown-event": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/papers.jsonc"] = file(`[{"UID": "1", "event_ids": ["event-99"]}]`)
				fsys["data/sessions.yml"] = file("[]")
			},
			want: sitedata.ErrNotFound,
		},
		"unknown-presented-paper": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/papers.jsonc"] = file("[]")
			},
			want: sitedata.ErrNotFound,
		},
		"award-with-videos": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/plenary_videos.csv"] = file("UID,session\nvideo-1,lifetime_achievement_award\n")
			},
			want: sitedata.ErrConflict,
		},
		"unknown-sponsor-level": {
			modify: func(fsys fstest.MapFS) {
				withSponsors(fsys, "- name: Acme\n  level: Titanium\n")
			},
			want: sitedata.ErrParse,
		},
		"sponsor-without-level": {
			modify: func(fsys fstest.MapFS) {
				withSponsors(fsys, "- name: Acme\n")
			},
			want: sitedata.ErrParse,
		},
		"duplicate-sponsor": {
			modify: func(fsys fstest.MapFS) {
				withSponsors(fsys, "- name: Acme Corp\n  level: Gold\n- name: acme  corp\n  level: Silver\n")
			},
			want: sitedata.ErrDuplicateKey,
		},
		"unknown-sponsor-publication": {
			modify: func(fsys fstest.MapFS) {
				withSponsors(fsys, "- name: Acme\n  level: Gold\n  publications: [2023.acl-long.99]\n")
			},
			want: sitedata.ErrNotFound,
		},
		"unknown-paper-workshop": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/papers.jsonc"] = file(`[
  {"UID": "2023.acl-long.1", "program": "main"},
  {"UID": "2023.w9.1", "workshop": "W9"},
]`)
			},
			want: sitedata.ErrNotFound,
		},
		"workshop-paper-in-main-program": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/papers.jsonc"] = file(`[
  {"UID": "2023.acl-long.1", "program": "main", "workshop": "W1"},
]`)
			},
			want: sitedata.ErrConflict,
		},
		"ends-before-it-starts": {
			modify: func(fsys fstest.MapFS) {
				fsys["data/workshops.yml"] = file(`- id: W1
  sessions:
    - start_time: "2023-07-13T17:00:00"
      end_time: "2023-07-13T09:00:00"
`)
			},
			want: sitedata.ErrConflict,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fsys := testSite()
			test.modify(fsys)
			site, err := sitedata.Load(context.Background(), fsys)
			if !errors.Is(err, test.want) {
				t.Errorf("expected error %v, got %v", test.want, err)
			}
			if site != nil {
				t.Error("expected no site to be returned alongside an error")
			}
		})
	}
}

func withSponsors(fsys fstest.MapFS, sponsors string) {
	fsys["configs/sponsors.yml"] = file(`entries:
  - name: sponsors
    path: data/sponsors.yml
    content: records
    kind: sponsor
`)
	fsys["data/sponsors.yml"] = file(sponsors)
}
