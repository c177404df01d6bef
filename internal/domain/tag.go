package domain

import "time"

type TagCategory string

const (
	TagCategoryAbility   TagCategory = "ability"
	TagCategoryDirection TagCategory = "direction"
	TagCategoryRole      TagCategory = "role"
)

func (c TagCategory) Valid() bool {
	switch c {
	case TagCategoryAbility, TagCategoryDirection, TagCategoryRole:
		return true
	}
	return false
}

// TagType is the role a tag plays on a particular profile.
type TagType string

const (
	TagTypeMyAbility      TagType = "my_ability"
	TagTypeSeekingAbility TagType = "seeking_ability"
	TagTypeDirection      TagType = "direction"
	TagTypeRole           TagType = "role"
)

// TagTypeFor maps a catalogue category to the tag_type used when the tag is
// attached to a profile.
func TagTypeFor(c TagCategory) TagType {
	switch c {
	case TagCategoryDirection:
		return TagTypeDirection
	case TagCategoryRole:
		return TagTypeRole
	default:
		return TagTypeMyAbility
	}
}

type Tag struct {
	ID         int         `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Category   TagCategory `json:"category" db:"category"`
	IsSystem   bool        `json:"is_system" db:"is_system"`
	UsageCount int         `json:"usage_count" db:"usage_count"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// TagRef is the compact tag shape embedded in cards and profiles.
type TagRef struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Category TagCategory `json:"category"`
}

func (t *Tag) Ref() TagRef {
	return TagRef{ID: t.ID, Name: t.Name, Category: t.Category}
}

type UserTag struct {
	TagID   int     `db:"tag_id"`
	TagType TagType `db:"tag_type"`
}
