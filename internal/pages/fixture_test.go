package pages_test

import (
	"context"
	"testing"
	"testing/fstest"

	"impractical.co/miniconf/internal/pages"
	"impractical.co/miniconf/internal/sitedata"
)

func file(contents string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(contents)}
}

func siteData() fstest.MapFS {
	return fstest.MapFS{
		"configs/config.yml": file(`site_title: ACL 2023
chat_server: acl2023.rocket.chat
programs: [main, findings]
`),
		"configs/program.yml": file(`title: Program
entries:
  - name: papers
    path: data/papers.yml
    content: records
    kind: paper
  - name: sessions
    path: data/sessions.yml
    content: records
    kind: session
  - name: plenary_sessions
    path: data/plenary_sessions.yml
    content: records
    kind: plenary_session
  - name: plenary_videos
    path: data/plenary_videos.csv
    content: records
    kind: plenary_video
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
  - name: socials
    path: data/socials.yml
    content: records
    kind: social
  - name: sponsors
    path: data/sponsors.yml
    content: records
    kind: sponsor
`),
		"configs/about.yml": file(`title: About
entries:
  - name: about
    path: pages/about
    content: markdown
`),
		"data/papers.yml": file(`- UID: 2023.acl-long.1
  title: One Paper
  authors: [Ada Lovelace, Alan Turing]
  track: Machine Translation
  program: main
  abstract: We translate.
  event_ids: [event-1]
  similar_paper_ids: [2023.acl-long.1, 2023.findings-acl.2]
  presentation_id: "38931111"
- UID: 2023.findings-acl.2
  title: Another Paper
  authors: [Grace Hopper]
  track: Dialogue and Interactive Systems
  program: findings
- UID: 2023.w1.1
  title: A Workshop Paper
  authors: [Alan Turing]
  workshop: W1
`),
		"data/sessions.yml": file(`- id: session-1
  name: Session 1
  type: Paper Sessions
  start_time: "2023-07-10T11:00:00"
  end_time: "2023-07-10T12:30:00"
  events:
    - id: event-1
      track: Machine Translation
      type: Oral
      paper_ids: [2023.acl-long.1]
- id: social-1
  name: Welcome Reception
  type: Socials
  start_time: "2023-07-10T18:00:00"
  end_time: "2023-07-10T21:00:00"
`),
		"data/plenary_sessions.yml": file(`- id: two-paths-to-intelligence
  title: Two Paths to Intelligence
  presenter: Geoffrey Hinton
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
- id: keynote-3
  title: Language and Vision
  abstract: Pictures and words.
  presentation_id: "38930003"
  rocketchat_channel: keynote-3-chat
  sessions:
    - name: Keynote 3
      start_time: "2023-07-12T09:00:00"
      end_time: "2023-07-12T10:00:00"
- id: business-meeting
  title: Business Meeting
  sessions:
    - name: Business Meeting
      start_time: "2023-07-12T16:00:00"
      end_time: "2023-07-12T17:00:00"
`),
		"data/plenary_videos.csv": file(`UID,session,title,speakers,presentation_id
video-1,two-paths-to-intelligence,Opening,Geoffrey Hinton,38930001
video-2,two-paths-to-intelligence,Panel,Yoshua Bengio|Yann LeCun,38930002
`),
		"data/tutorials.yml": file(`- id: T1
  title: Tutorial One
  organizers: [Ada Lovelace]
  abstract: Learn things.
  rocketchat_channel: tutorial-t1
  sessions:
    - name: Morning
      start_time: "2023-07-09T09:00:00"
      end_time: "2023-07-09T10:30:00"
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
		"data/socials.yml": file(`- id: queer-in-ai
  name: Queer in AI Social
  description: Drinks and conversation.
  organizers: [Grace Hopper]
  rocketchat_channel: queer-in-ai
  sessions:
    - name: Social
      start_time: "2023-07-11T19:00:00"
      end_time: "2023-07-11T21:00:00"
`),
		"data/sponsors.yml": file(`- name: Analytical Engines
  level: Gold
  levels: ["Diversity & Inclusion: Champion"]
  website: https://example.com
  publications: [2023.acl-long.1]
- name: Difference Engines
  levels: [Diamond]
`),
		"data/committee.tsv": file("role\tname\taffiliation\n" +
			"General Chair\tAda Lovelace\tAnalytical Engines\n"),
		"pages/about/overview.md": file(`---
title: About ACL
---
The *annual* meeting.
`),
	}
}

func testSite(t *testing.T) *pages.Site {
	t.Helper()
	data, err := sitedata.Load(context.Background(), siteData())
	if err != nil {
		t.Fatalf("error loading site data: %s", err)
	}
	return pages.New(data, pages.DefaultTemplates())
}
