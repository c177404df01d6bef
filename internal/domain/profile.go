package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is keyed by the owning user's id.
type Profile struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Title           string    `json:"title" db:"title"`
	Bio             string    `json:"bio" db:"bio"`
	Vision          string    `json:"vision" db:"vision"`
	Tags            []int     `json:"tags" db:"-"`
	LinkedinURL     *string   `json:"linkedin_url" db:"linkedin_url"`
	GithubURL       *string   `json:"github_url" db:"github_url"`
	PersonalWebsite *string   `json:"personal_website" db:"personal_website"`
	Completion      int       `json:"completion" db:"profile_completion"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Completion weights, in the order they are awarded.
const (
	completionName    = 15
	completionTitle   = 15
	completionBio     = 20
	completionVision  = 20
	completionTags    = 15
	completionPerLink = 5
)

// CalculateCompletion returns the 0-100 completion score derived from the
// profile fields. Lengths are counted in runes.
func CalculateCompletion(p *Profile) int {
	score := 0
	if runeLen(p.Name) >= 2 {
		score += completionName
	}
	if runeLen(p.Title) >= 5 {
		score += completionTitle
	}
	if runeLen(p.Bio) >= 20 {
		score += completionBio
	}
	if runeLen(p.Vision) >= 10 {
		score += completionVision
	}
	if len(UniqueTags(p.Tags)) >= 3 {
		score += completionTags
	}
	for _, link := range []*string{p.LinkedinURL, p.GithubURL, p.PersonalWebsite} {
		if link != nil && *link != "" {
			score += completionPerLink
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Recalculate refreshes the derived fields.
func (p *Profile) Recalculate() {
	p.Tags = UniqueTags(p.Tags)
	p.Completion = CalculateCompletion(p)
}

func (p *Profile) HasTag(id int) bool {
	for _, t := range p.Tags {
		if t == id {
			return true
		}
	}
	return false
}
