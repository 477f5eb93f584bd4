package sitedata_test

import (
	"testing/fstest"
)

func file(contents string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(contents)}
}

// testSite returns a small but complete data directory. Tests that need to
// break it replace or delete single files.
func testSite() fstest.MapFS {
	return fstest.MapFS{
		"configs/config.yml": file(`site_title: ACL 2023
chat_server: acl2023.rocket.chat
paper_images_path: static/images/papers
conference_timezone: America/Toronto
programs: [main, findings]
twitter: aclmeeting
`),
		"configs/papers.yml": file(`title: Papers
entries:
  - name: papers
    path: data/papers.jsonc
    content: records
    kind: paper
  - name: sessions
    path: data/sessions.yml
    content: records
    kind: session
`),
		"configs/plenary.yml": file(`title: Plenary Sessions
entries:
  - name: plenary_sessions
    path: data/plenary_sessions.yml
    content: records
    kind: plenary_session
  - name: plenary_videos
    path: data/plenary_videos.csv
    content: records
    kind: plenary_video
`),
		"configs/events.yml": file(`title: Events
entries:
  - name: tutorials
    path: data/tutorials.yml
    content: records
    kind: tutorial
  - name: workshops
    path: data/workshops.yml
    content: records
    kind: workshop
  - name: committee
    path: data/committee.tsv
    content: records
    kind: committee
`),
		"configs/about.yml": file(`title: About
entries:
  - name: about
    path: pages/about
    content: markdown
`),
		"data/papers.jsonc": file(`// accepted papers
[
  {
    "UID": "2023.acl-long.1",
    "title": "One Paper",
    "authors": ["Ada Lovelace", "Alan Turing"],
    "track": "Machine Translation",
    "paper_type": "long",
    "program": "main",
    "abstract": "We translate.",
    "keywords": ["mt"],
    "event_ids": ["event-1"],
    "similar_paper_ids": ["2023.findings-acl.2"],
  },
  {
    "UID": "2023.findings-acl.2",
    "title": "Another Paper",
    "authors": ["Grace Hopper"],
    "track": "Dialogue and Interactive Systems",
    "program": "findings",
    "presentation_id": 38931234,
  },
]
`),
		"data/sessions.yml": file(`- id: session-1
  name: "Session 1"
  type: Paper Sessions
  start_time: "2023-07-10T11:00:00"
  end_time: "2023-07-10T12:30:00"
  events:
    - id: event-1
      track: Machine Translation
      type: Oral
      chairs: [Ada Lovelace]
      paper_ids: [2023.acl-long.1]
      room: Metropolitan East
- id: session-2
  name: "Session 2"
  start_time: "2023-07-11T11:00:00"
  end_time: "2023-07-11T12:30:00"
`),
		"data/plenary_sessions.yml": file(`- id: two-paths-to-intelligence
  title: Two Paths to Intelligence
  presenter: Geoffrey Hinton
  institution: University of Toronto
  abstract: Digital and analog computation.
  sessions:
    - name: Keynote 1
      start_time: "2023-07-10T09:00:00"
      end_time: "2023-07-10T10:00:00"
- id: lifetime_achievement_award
  title: Lifetime Achievement Award
  presentation_id: "38929999"
  sessions:
    - name: Award
      start_time: "2023-07-11T16:00:00"
      end_time: "2023-07-11T17:00:00"
- id: keynote-2
  title: Large Language Models
  presentation_id: "38930000"
  bio: A researcher.
  sessions:
    - name: Keynote 2
      start_time: "2023-07-11T09:00:00"
      end_time: "2023-07-11T10:00:00"
`),
		"data/plenary_videos.csv": file(`UID,session,title,speakers,presentation_id
video-1,two-paths-to-intelligence,Opening,Geoffrey Hinton,38930001
video-2,two-paths-to-intelligence,Panel,Yoshua Bengio|Yann LeCun,38930002
`),
		"data/tutorials.yml": file(`- id: T1
  title: Tutorial One
  organizers: [Ada Lovelace]
  abstract: Learn things.
  sessions:
    - name: Morning
      start_time: "2023-07-09T09:00:00"
      end_time: "2023-07-09T10:30:00"
    - name: Late morning
      start_time: "2023-07-09T10:30:00"
      end_time: "2023-07-09T12:00:00"
`),
		"data/workshops.yml": file(`- id: W1
  title: Workshop One
  organizers: [Grace Hopper]
  abstract: Discuss things.
  sessions:
    - name: Day 1
      start_time: "2023-07-13T09:00:00"
      end_time: "2023-07-13T17:00:00"
`),
		"data/committee.tsv": file("role\tname\taffiliation\n" +
			"General Chair\tAda Lovelace\tAnalytical Engines\n" +
			"Program Chair\tAlan Turing\tBletchley Park\n" +
			"Program Chair\tGrace Hopper\tUS Navy\n"),
		"pages/about/overview.md": file(`---
title: About ACL
order: 1
---
# Welcome

The *annual* meeting.
`),
		"pages/about/code-of-conduct.md": file(`Be kind.
`),
	}
}
