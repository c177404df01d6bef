package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssistant struct {
	suggestions []string
	err         error
	abilities   []string
}

func (f *fakeAssistant) SuggestBios(_ context.Context, _, _ string, abilities []string) ([]string, error) {
	f.abilities = abilities
	return f.suggestions, f.err
}

type fixture struct {
	uc          *ProfileUseCase
	profiles    *memory.ProfileRepository
	tags        *memory.TagRepository
	connections *memory.ConnectionRepository
	interests   *memory.InterestRepository
}

func newFixture(assistant BioAssistant) *fixture {
	tags := memory.NewTagRepository(memory.SystemTags()...)
	profiles := memory.NewProfileRepository(tags)
	connections := memory.NewConnectionRepository()
	interests := memory.NewInterestRepository()
	return &fixture{
		uc:          NewProfileUseCase(profiles, tags, connections, interests, assistant, zap.NewNop()),
		profiles:    profiles,
		tags:        tags,
		connections: connections,
		interests:   interests,
	}
}

func (f *fixture) addProfile(t *testing.T, name string, tagIDs ...int) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		ID:          uuid.New(),
		Name:        name,
		Title:       "Founder of things",
		Bio:         "Building products for a decade now.",
		Vision:      "Find a great co-founder",
		Tags:        tagIDs,
		LinkedinURL: strPtr("https://linkedin.com/in/" + name),
		IsActive:    true,
	}
	p.Recalculate()
	userTags := make([]domain.UserTag, len(tagIDs))
	for i, id := range tagIDs {
		userTags[i] = domain.UserTag{TagID: id, TagType: domain.TagTypeMyAbility}
	}
	require.NoError(t, f.profiles.Create(context.Background(), p, userTags))
	return p
}

func strPtr(s string) *string { return &s }

func TestGetMyProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	p := f.addProfile(t, "alice", 1, 11, 16)

	view, err := f.uc.GetMyProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Name)
	require.Len(t, view.Tags, 3)
	assert.Equal(t, "Technical partner", view.Tags[2].Name)
	assert.Equal(t, domain.TagTypeRole, view.Tags[2].TagType)

	_, err = f.uc.GetMyProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	p := f.addProfile(t, "bob", 1, 2, 11)
	assert.Equal(t, 90, p.Completion)

	view, err := f.uc.UpdateProfile(ctx, p.ID, &UpdateProfileRequest{
		Title:       strPtr("  Growth lead  "),
		Tags:        &[]int{2, 3},
		LinkedinURL: strPtr(""),
		GithubURL:   strPtr("https://github.com/bob"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Growth lead", view.Title)
	assert.Nil(t, view.LinkedinURL)
	require.NotNil(t, view.GithubURL)
	// Dropping below three tags loses the tag points.
	assert.Equal(t, 75, view.Completion)

	tags, err := f.tags.GetByIDs(ctx, []int{1, 3, 11})
	require.NoError(t, err)
	assert.Equal(t, 9, tags[1].UsageCount)
	assert.Equal(t, 9, tags[3].UsageCount)
	assert.Equal(t, 19, tags[11].UsageCount)

	assert.Equal(t, []domain.UserTag{
		{TagID: 2, TagType: domain.TagTypeMyAbility},
		{TagID: 3, TagType: domain.TagTypeMyAbility},
	}, f.profiles.UserTags(p.ID))
}

func TestUpdateProfileClearsLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	p := f.addProfile(t, "bob", 1, 2, 11)

	view, err := f.uc.UpdateProfile(ctx, p.ID, &UpdateProfileRequest{GithubURL: strPtr("https://github.com/bob")})
	require.NoError(t, err)
	require.NotNil(t, view.GithubURL)
	assert.Equal(t, "https://github.com/bob", *view.GithubURL)
	withLink := view.Completion

	view, err = f.uc.UpdateProfile(ctx, p.ID, &UpdateProfileRequest{GithubURL: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, view.GithubURL)
	assert.Equal(t, withLink-5, view.Completion)

	stored, err := f.profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GithubURL)
}

func TestUpdateProfileValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	p := f.addProfile(t, "carol", 1)

	tests := []struct {
		name string
		req  *UpdateProfileRequest
	}{
		{"blank name", &UpdateProfileRequest{Name: strPtr("   ")}},
		{"short title", &UpdateProfileRequest{Title: strPtr("CTO")}},
		{"too many tags", &UpdateProfileRequest{Tags: &[]int{1, 2, 3, 4, 5, 6, 7, 8, 9}}},
		{"duplicate tags", &UpdateProfileRequest{Tags: &[]int{1, 1}}},
		{"unknown tag", &UpdateProfileRequest{Tags: &[]int{1, 404}}},
		{"bad url", &UpdateProfileRequest{GithubURL: strPtr("not a url")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.UpdateProfile(ctx, p.ID, tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := f.uc.UpdateProfile(ctx, uuid.New(), &UpdateProfileRequest{Bio: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetProfileVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	viewer := f.addProfile(t, "dan", 1, 11)
	target := f.addProfile(t, "erin", 1, 12)

	resp, err := f.uc.GetProfile(ctx, viewer.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, resp.Revealed)
	assert.Nil(t, resp.Profile)
	require.NotNil(t, resp.Card)
	assert.Equal(t, 33, resp.Card.MatchPercent)
	assert.False(t, resp.Card.HasSentInterest)

	require.NoError(t, f.interests.Create(ctx, &domain.Interest{SenderID: viewer.ID, ReceiverID: target.ID, Status: domain.InterestStatusPending}))
	resp, err = f.uc.GetProfile(ctx, viewer.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, resp.Card.HasSentInterest)

	conn := domain.NewConnection(viewer.ID, target.ID)
	require.NoError(t, f.connections.Create(ctx, conn))
	resp, err = f.uc.GetProfile(ctx, viewer.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, resp.Revealed)
	assert.Equal(t, "erin", resp.Profile.Name)

	conn.Status = domain.ConnectionStatusArchived
	require.NoError(t, f.connections.Update(ctx, conn))
	resp, err = f.uc.GetProfile(ctx, viewer.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, resp.Revealed)

	resp, err = f.uc.GetProfile(ctx, viewer.ID, viewer.ID)
	require.NoError(t, err)
	assert.True(t, resp.Revealed)
}

func TestGetProfileInactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	viewer := f.addProfile(t, "fay", 1)
	target := f.addProfile(t, "gus", 2)

	_, err := f.uc.UpdateProfile(ctx, target.ID, &UpdateProfileRequest{IsActive: new(bool)})
	require.NoError(t, err)

	_, err = f.uc.GetProfile(ctx, viewer.ID, target.ID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.uc.GetProfile(ctx, viewer.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSuggestBios(t *testing.T) {
	ctx := context.Background()

	f := newFixture(nil)
	_, err := f.uc.SuggestBios(ctx, &SuggestBiosRequest{Name: "Hal", Title: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrAssistantUnavailable)

	assistant := &fakeAssistant{suggestions: []string{"I build reliable backends for growing startups."}}
	f = newFixture(assistant)
	resp, err := f.uc.SuggestBios(ctx, &SuggestBiosRequest{Name: "Hal", Title: "Engineer", AbilityTags: []int{1, 9}})
	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 1)
	assert.Equal(t, []string{"AI R&D", "Tech architecture"}, assistant.abilities)

	_, err = f.uc.SuggestBios(ctx, &SuggestBiosRequest{Name: "H", Title: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assistant.err = errors.New("quota exceeded")
	_, err = f.uc.SuggestBios(ctx, &SuggestBiosRequest{Name: "Hal", Title: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrAssistantUnavailable)
}

func TestDiffTags(t *testing.T) {
	added, removed := diffTags([]int{1, 2, 3}, []int{3, 4})
	assert.Equal(t, []int{4}, added)
	assert.Equal(t, []int{1, 2}, removed)

	added, removed = diffTags(nil, nil)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}
