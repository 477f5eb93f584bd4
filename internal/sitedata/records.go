package sitedata

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"time"
)

// builder turns raw records into the model, rejecting records without ids
// and ids that were already taken by another record of the same kind.
type builder struct {
	site *Site
	loc  *time.Location

	// origin remembers the file each id was first seen in, per kind, so
	// duplicate errors can name both files.
	origin map[Kind]map[string]string
	videos []PlenaryVideo
	events map[string]string
}

func newBuilder(site *Site, loc *time.Location) *builder {
	return &builder{
		site:   site,
		loc:    loc,
		origin: map[Kind]map[string]string{},
		events: map[string]string{},
	}
}

func (b *builder) claim(kind Kind, id, file string) error {
	if id == "" {
		return fmt.Errorf("%w: %s: %s record without an id", ErrParse, file, kind)
	}
	if b.origin[kind] == nil {
		b.origin[kind] = map[string]string{}
	}
	if prev, ok := b.origin[kind][id]; ok {
		return fmt.Errorf("%w: %s %q in %s was already declared in %s", ErrDuplicateKey, kind, id, file, prev)
	}
	b.origin[kind][id] = file
	return nil
}

func (b *builder) add(entry ConfigEntry, records []rawRecord) error {
	for pos, record := range records {
		var err error
		switch entry.Kind {
		case KindPaper:
			err = b.addPaper(entry.Path, record)
		case KindPlenarySession:
			err = b.addPlenarySession(entry.Path, record)
		case KindPlenaryVideo:
			err = b.addPlenaryVideo(entry.Path, record)
		case KindTutorial:
			err = b.addTutorial(entry.Path, record)
		case KindWorkshop:
			err = b.addWorkshop(entry.Path, record)
		case KindSession:
			err = b.addSession(entry.Path, record)
		case KindSocial:
			err = b.addSocial(entry.Path, record)
		case KindSponsor:
			err = b.addSponsor(entry.Path, record)
		case KindCommittee:
			b.site.Committee = append(b.site.Committee, CommitteeMember{
				Role:        record.str("role"),
				Name:        record.str("name"),
				Affiliation: record.str("affiliation"),
				URL:         record.str("url"),
				Image:       record.str("image"),
			})
		default:
			err = fmt.Errorf("%w: unknown kind %q", ErrParse, entry.Kind)
		}
		if err != nil {
			return fmt.Errorf("%s record %d: %w", entry.Path, pos, err)
		}
	}
	return nil
}

func (b *builder) addPaper(file string, record rawRecord) error {
	paper := &Paper{
		ID:              record.id(),
		Title:           record.str("title"),
		Authors:         record.list("authors"),
		Track:           record.str("track"),
		PaperType:       record.str("paper_type"),
		Program:         record.str("program"),
		Abstract:        record.str("abstract"),
		TLDR:            record.str("tldr"),
		Keywords:        record.list("keywords"),
		EventIDs:        record.list("event_ids"),
		SimilarPaperIDs: record.list("similar_paper_ids"),
		PDFURL:          record.first("pdf_url", "paper_pdf"),
		VideoURL:        record.str("video_url"),
		PresentationID:  record.str("presentation_id"),
		CardImagePath:   record.str("card_image_path"),
		Workshop:        record.first("workshop", "workshop_id"),
	}
	if err := b.claim(KindPaper, paper.ID, file); err != nil {
		return err
	}
	if paper.CardImagePath == "" && b.site.Config.PaperImagesPath != "" {
		paper.CardImagePath = path.Join(b.site.Config.PaperImagesPath, paper.ID+".png")
	}
	b.site.Papers = append(b.site.Papers, paper)
	return nil
}

func (b *builder) addPlenarySession(file string, record rawRecord) error {
	sessions, err := b.sessionInfos(record)
	if err != nil {
		return err
	}
	plenary := &PlenarySession{
		ID:                record.id(),
		Title:             record.str("title"),
		Image:             record.str("image"),
		Day:               record.str("day"),
		Presenter:         record.first("presenter", "speaker_name"),
		Institution:       record.str("institution"),
		Abstract:          record.first("abstract", "desc"),
		Bio:               record.str("bio"),
		PresentationID:    record.str("presentation_id"),
		RocketChatChannel: record.str("rocketchat_channel"),
		Sessions:          sessions,
	}
	if err := b.claim(KindPlenarySession, plenary.ID, file); err != nil {
		return err
	}
	if plenary.Day == "" && len(sessions) > 0 && !sessions[0].Start.IsZero() {
		plenary.Day = sessions[0].Start.In(b.loc).Format("Monday")
	}
	b.site.PlenarySessions = append(b.site.PlenarySessions, plenary)
	return nil
}

func (b *builder) addPlenaryVideo(file string, record rawRecord) error {
	video := PlenaryVideo{
		ID:             record.id(),
		Session:        record.first("session", "plenary_id"),
		Title:          record.str("title"),
		Speakers:       record.list("speakers"),
		PresentationID: record.str("presentation_id"),
	}
	if err := b.claim(KindPlenaryVideo, video.ID, file); err != nil {
		return err
	}
	if video.Session == "" {
		return fmt.Errorf("%w: %s: video %q doesn't name its plenary session", ErrParse, file, video.ID)
	}
	// attached to their sessions once every plenary session is loaded
	b.videos = append(b.videos, video)
	return nil
}

func (b *builder) addTutorial(file string, record rawRecord) error {
	sessions, err := b.sessionInfos(record)
	if err != nil {
		return err
	}
	tutorial := &Tutorial{
		ID:                record.id(),
		Title:             record.str("title"),
		Organizers:        record.list("organizers"),
		Abstract:          record.first("abstract", "desc"),
		Website:           record.str("website"),
		Material:          record.str("material"),
		Slides:            record.str("slides"),
		Prerecorded:       record.str("prerecorded"),
		RocketChatChannel: record.first("rocketchat_channel", "rocketchat"),
		Sessions:          sessions,
	}
	if err := b.claim(KindTutorial, tutorial.ID, file); err != nil {
		return err
	}
	b.site.Tutorials = append(b.site.Tutorials, tutorial)
	return nil
}

func (b *builder) addWorkshop(file string, record rawRecord) error {
	sessions, err := b.sessionInfos(record)
	if err != nil {
		return err
	}
	workshop := &Workshop{
		ID:                record.id(),
		Title:             record.str("title"),
		Organizers:        record.list("organizers"),
		Abstract:          record.first("abstract", "desc"),
		Website:           record.first("website", "url"),
		Livestream:        record.str("livestream"),
		RocketChatChannel: record.str("rocketchat_channel"),
		Sessions:          sessions,
	}
	if err := b.claim(KindWorkshop, workshop.ID, file); err != nil {
		return err
	}
	b.site.Workshops = append(b.site.Workshops, workshop)
	return nil
}

func (b *builder) addSocial(file string, record rawRecord) error {
	sessions, err := b.sessionInfos(record)
	if err != nil {
		return err
	}
	social := &Social{
		ID:                record.id(),
		Name:              record.first("name", "title"),
		Description:       record.first("description", "abstract"),
		Image:             record.str("image"),
		Location:          record.str("location"),
		Organizers:        record.list("organizers"),
		Website:           record.str("website"),
		RocketChatChannel: record.str("rocketchat_channel"),
		Sessions:          sessions,
	}
	if err := b.claim(KindSocial, social.ID, file); err != nil {
		return err
	}
	b.site.Socials = append(b.site.Socials, social)
	return nil
}

func (b *builder) addSponsor(file string, record rawRecord) error {
	sponsor := &Sponsor{
		ID:                record.id(),
		Name:              record.str("name"),
		Levels:            record.list("levels"),
		Logo:              record.str("logo"),
		Website:           record.str("website"),
		Description:       record.str("description"),
		RocketChatChannel: record.str("rocketchat_channel"),
		PublicationIDs:    record.list("publications"),
	}
	// sponsors are usually only named, so their id is derived from the
	// name: "Apple Inc" becomes "apple_inc"
	if sponsor.ID == "" {
		sponsor.ID = strings.Join(strings.Fields(strings.ToLower(sponsor.Name)), "_")
	}
	if level := record.str("level"); level != "" {
		sponsor.Levels = append([]string{level}, sponsor.Levels...)
	}
	if len(sponsor.Levels) < 1 {
		return fmt.Errorf("%w: sponsor %q has no level", ErrParse, sponsor.ID)
	}
	for _, level := range sponsor.Levels {
		if !slices.Contains(b.site.Config.SponsorLevels, level) {
			return fmt.Errorf("%w: sponsor %q: unknown level %q", ErrParse, sponsor.ID, level)
		}
	}
	if err := b.claim(KindSponsor, sponsor.ID, file); err != nil {
		return err
	}
	b.site.Sponsors = append(b.site.Sponsors, sponsor)
	return nil
}

func (b *builder) addSession(file string, record rawRecord) error {
	session := &Session{
		ID:   record.id(),
		Name: record.str("name"),
		Type: record.str("type"),
	}
	if err := b.claim(KindSession, session.ID, file); err != nil {
		return err
	}
	if session.Name == "" {
		session.Name = session.ID
	}
	if session.Type == "" {
		session.Type = TypePaperSessions
	}
	var err error
	if session.Start, session.End, err = b.span(record); err != nil {
		return fmt.Errorf("session %q: %w", session.ID, err)
	}
	events, err := record.children("events")
	if err != nil {
		return fmt.Errorf("session %q: %w", session.ID, err)
	}
	for _, raw := range events {
		event := Event{
			ID:       raw.id(),
			Session:  session.ID,
			Track:    raw.str("track"),
			Type:     raw.str("type"),
			Chairs:   raw.list("chairs"),
			PaperIDs: raw.list("paper_ids"),
			Room:     raw.str("room"),
			Link:     raw.str("link"),
		}
		if event.ID == "" {
			return fmt.Errorf("%w: session %q: event without an id", ErrParse, session.ID)
		}
		if prev, ok := b.events[event.ID]; ok {
			return fmt.Errorf("%w: event %q in session %q was already declared in session %q", ErrDuplicateKey, event.ID, session.ID, prev)
		}
		b.events[event.ID] = session.ID
		if event.Start, event.End, err = b.span(raw); err != nil {
			return fmt.Errorf("event %q: %w", event.ID, err)
		}
		// events without their own times run for the whole session
		if event.Start.IsZero() {
			event.Start, event.End = session.Start, session.End
		}
		session.Events = append(session.Events, event)
	}
	b.site.Sessions = append(b.site.Sessions, session)
	return nil
}

func (b *builder) sessionInfos(record rawRecord) ([]SessionInfo, error) {
	raws, err := record.children("sessions")
	if err != nil {
		return nil, err
	}
	infos := make([]SessionInfo, 0, len(raws))
	for _, raw := range raws {
		info := SessionInfo{
			Name: raw.str("name"),
			Link: raw.first("link", "zoom_link"),
		}
		if info.Start, info.End, err = b.span(raw); err != nil {
			return nil, fmt.Errorf("session %q: %w", info.Name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// span reads start_time and end_time, and rejects ranges that end before
// they start.
func (b *builder) span(record rawRecord) (time.Time, time.Time, error) {
	start, err := record.time("start_time", b.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := record.time("end_time", b.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: starts at %s but ends at %s", ErrConflict, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return start, end, nil
}
