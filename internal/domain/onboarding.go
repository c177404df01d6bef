package domain

import "github.com/google/uuid"

type OnboardingStep1 struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
}

type OnboardingStep2 struct {
	AbilityTags []int  `json:"ability_tags"`
	Vision      string `json:"vision"`
}

type OnboardingStep3 struct {
	RoleTag       int   `json:"role_tag"`
	DirectionTags []int `json:"direction_tags"`
}

// OnboardingDraft accumulates the three onboarding steps before a profile
// exists.
type OnboardingDraft struct {
	Step1 *OnboardingStep1 `json:"step1,omitempty"`
	Step2 *OnboardingStep2 `json:"step2,omitempty"`
	Step3 *OnboardingStep3 `json:"step3,omitempty"`
}

func (d *OnboardingDraft) CompletedSteps() []int {
	steps := make([]int, 0, 3)
	if d.Step1 != nil {
		steps = append(steps, 1)
	}
	if d.Step2 != nil {
		steps = append(steps, 2)
	}
	if d.Step3 != nil {
		steps = append(steps, 3)
	}
	return steps
}

func (d *OnboardingDraft) IsComplete() bool {
	return d.Step1 != nil && d.Step2 != nil && d.Step3 != nil
}

// BuildProfile merges the steps into a new active profile and the user_tags
// rows to store with it. The draft must be complete.
func (d *OnboardingDraft) BuildProfile(userID uuid.UUID) (*Profile, []UserTag) {
	tags := make([]UserTag, 0, len(d.Step2.AbilityTags)+len(d.Step3.DirectionTags)+1)
	for _, id := range d.Step2.AbilityTags {
		tags = append(tags, UserTag{TagID: id, TagType: TagTypeMyAbility})
	}
	for _, id := range d.Step3.DirectionTags {
		tags = append(tags, UserTag{TagID: id, TagType: TagTypeDirection})
	}
	tags = append(tags, UserTag{TagID: d.Step3.RoleTag, TagType: TagTypeRole})
	tags = DedupeUserTags(tags)

	ids := make([]int, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.TagID)
	}

	profile := &Profile{
		ID:       userID,
		Name:     d.Step1.Name,
		Title:    d.Step1.Title,
		Bio:      d.Step1.Bio,
		Vision:   d.Step2.Vision,
		Tags:     ids,
		IsActive: true,
	}
	profile.Recalculate()
	return profile, tags
}

// DedupeUserTags keeps the first occurrence of each tag id.
func DedupeUserTags(tags []UserTag) []UserTag {
	seen := make(map[int]struct{}, len(tags))
	out := make([]UserTag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t.TagID]; ok {
			continue
		}
		seen[t.TagID] = struct{}{}
		out = append(out, t)
	}
	return out
}
