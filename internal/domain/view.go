package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileTag is a resolved tag as it appears on a full profile.
type ProfileTag struct {
	TagRef
	TagType TagType `json:"tag_type"`
}

// ProfileView is the full profile, shown to its owner and to connections.
type ProfileView struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Title           string       `json:"title"`
	Bio             string       `json:"bio"`
	Vision          string       `json:"vision"`
	Tags            []ProfileTag `json:"tags"`
	LinkedinURL     *string      `json:"linkedin_url"`
	GithubURL       *string      `json:"github_url"`
	PersonalWebsite *string      `json:"personal_website"`
	Completion      int          `json:"completion"`
	IsActive        bool         `json:"is_active"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// AnonymousCard is a profile with the identity removed: no name and no links.
type AnonymousCard struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Bio             string    `json:"bio"`
	Vision          string    `json:"vision"`
	Tags            []TagRef  `json:"tags"`
	MatchPercent    int       `json:"match_percent"`
	Completion      int       `json:"completion"`
	HasSentInterest bool      `json:"has_sent_interest"`
	IsConnected     bool      `json:"is_connected"`
	CreatedAt       time.Time `json:"created_at"`
}

// ConnectedUser is the counterpart of a connection with contact details
// revealed.
type ConnectedUser struct {
	ConnectionID        int              `json:"connection_id"`
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Title               string           `json:"title"`
	Bio                 string           `json:"bio"`
	Vision              string           `json:"vision"`
	LinkedinURL         *string          `json:"linkedin_url"`
	GithubURL           *string          `json:"github_url"`
	PersonalWebsite     *string          `json:"personal_website"`
	Tags                []TagRef         `json:"tags"`
	Status              ConnectionStatus `json:"status"`
	EstablishedAt       time.Time        `json:"established_at"`
	MyStage             Stage            `json:"my_stage"`
	DaysSinceConnection int              `json:"days_since_connection"`
	Intro               *string          `json:"intro"`
}

// TagRefs resolves ids against tags, skipping unknown ids.
func TagRefs(ids []int, tags map[int]*Tag) []TagRef {
	refs := make([]TagRef, 0, len(ids))
	for _, id := range ids {
		if t, ok := tags[id]; ok {
			refs = append(refs, t.Ref())
		}
	}
	return refs
}

func NewProfileView(p *Profile, tags map[int]*Tag) *ProfileView {
	resolved := make([]ProfileTag, 0, len(p.Tags))
	for _, ref := range TagRefs(p.Tags, tags) {
		resolved = append(resolved, ProfileTag{TagRef: ref, TagType: TagTypeFor(ref.Category)})
	}
	return &ProfileView{
		ID:              p.ID,
		Name:            p.Name,
		Title:           p.Title,
		Bio:             p.Bio,
		Vision:          p.Vision,
		Tags:            resolved,
		LinkedinURL:     p.LinkedinURL,
		GithubURL:       p.GithubURL,
		PersonalWebsite: p.PersonalWebsite,
		Completion:      p.Completion,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewAnonymousCard builds the card p shows to a viewer holding viewerTags.
func NewAnonymousCard(p *Profile, tags map[int]*Tag, viewerTags []int) *AnonymousCard {
	return &AnonymousCard{
		ID:           p.ID,
		Title:        p.Title,
		Bio:          p.Bio,
		Vision:       p.Vision,
		Tags:         TagRefs(p.Tags, tags),
		MatchPercent: MatchPercent(viewerTags, p.Tags),
		Completion:   p.Completion,
		CreatedAt:    p.CreatedAt,
	}
}

// NewConnectedUser describes the other side of c as seen by viewerID.
func NewConnectedUser(c *Connection, viewerID uuid.UUID, other *Profile, tags map[int]*Tag, now time.Time) *ConnectedUser {
	return &ConnectedUser{
		ConnectionID:        c.ID,
		ID:                  other.ID,
		Name:                other.Name,
		Title:               other.Title,
		Bio:                 other.Bio,
		Vision:              other.Vision,
		LinkedinURL:         other.LinkedinURL,
		GithubURL:           other.GithubURL,
		PersonalWebsite:     other.PersonalWebsite,
		Tags:                TagRefs(other.Tags, tags),
		Status:              c.Status,
		EstablishedAt:       c.EstablishedAt,
		MyStage:             c.StageFor(viewerID),
		DaysSinceConnection: c.DaysSince(now),
		Intro:               c.Intro,
	}
}
