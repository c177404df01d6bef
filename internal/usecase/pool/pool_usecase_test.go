package pool

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc          *PoolUseCase
	profiles    *memory.ProfileRepository
	interests   *memory.InterestRepository
	connections *memory.ConnectionRepository
	created     time.Time
}

func newFixture() *fixture {
	tags := memory.NewTagRepository(memory.SystemTags()...)
	profiles := memory.NewProfileRepository(tags)
	interests := memory.NewInterestRepository()
	connections := memory.NewConnectionRepository()
	return &fixture{
		uc:          NewPoolUseCase(profiles, tags, interests, connections),
		profiles:    profiles,
		interests:   interests,
		connections: connections,
		created:     time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

// add creates profiles one hour apart, so later calls are newer.
func (f *fixture) add(t *testing.T, title, bio string, active bool, tagIDs ...int) *domain.Profile {
	t.Helper()
	f.created = f.created.Add(time.Hour)
	p := &domain.Profile{
		ID:        uuid.New(),
		Name:      "Hidden " + title,
		Title:     title,
		Bio:       bio,
		Vision:    "Looking for a partner",
		Tags:      tagIDs,
		IsActive:  active,
		CreatedAt: f.created,
	}
	p.Recalculate()
	userTags := make([]domain.UserTag, len(tagIDs))
	for i, id := range tagIDs {
		userTags[i] = domain.UserTag{TagID: id, TagType: domain.TagTypeMyAbility}
	}
	require.NoError(t, f.profiles.Create(context.Background(), p, userTags))
	return p
}

func ids(cards []*domain.AnonymousCard) []uuid.UUID {
	out := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestBrowseDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	viewer := f.add(t, "Viewer title", "Viewer bio that is long enough", true, 1, 11, 16)
	older := f.add(t, "AI engineer", "Trains models all day long, every day", true, 1, 11)
	hidden := f.add(t, "Inactive one", "Should never be listed in the pool", false, 1)
	newer := f.add(t, "Growth marketer", "Took two apps to a million users", true, 3)

	resp, err := f.uc.Browse(ctx, viewer.ID, &BrowseRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, []uuid.UUID{newer.ID, older.ID}, ids(resp.Items))
	assert.NotContains(t, ids(resp.Items), hidden.ID)
	assert.NotContains(t, ids(resp.Items), viewer.ID)
	assert.Equal(t, 67, resp.Items[1].MatchPercent)
	assert.Equal(t, 0, resp.Items[0].MatchPercent)
}

func TestBrowseFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	viewer := f.add(t, "Viewer title", "Viewer bio that is long enough", true, 1, 11)
	ai := f.add(t, "AI engineer", "Trains models all day long, every day", true, 1, 11, 16)
	growth := f.add(t, "Growth marketer", "Took two apps to a million users", true, 3, 12)
	bare := f.add(t, "Designer", "Short", true)

	tests := []struct {
		name string
		req  BrowseRequest
		want []uuid.UUID
	}{
		{"all tags required", BrowseRequest{Tags: []int{1, 16}}, []uuid.UUID{ai.ID}},
		{"any tag of category", BrowseRequest{Category: "direction"}, []uuid.UUID{growth.ID, ai.ID}},
		{"role category", BrowseRequest{Category: "role"}, []uuid.UUID{ai.ID}},
		{"query is case insensitive", BrowseRequest{Query: "MILLION"}, []uuid.UUID{growth.ID}},
		{"query matches title", BrowseRequest{Query: "design"}, []uuid.UUID{bare.ID}},
		{"min completion", BrowseRequest{MinCompletion: 70}, []uuid.UUID{growth.ID, ai.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := f.uc.Browse(ctx, viewer.ID, &req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(resp.Items))
			assert.Equal(t, len(tt.want), resp.Total)
		})
	}
}

func TestBrowseSorts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	viewer := f.add(t, "Viewer title", "Viewer bio that is long enough", true, 1, 2, 11)
	half := f.add(t, "Half match", "Short", true, 1, 2)
	full := f.add(t, "Full match", "Bio that is at least twenty characters", true, 1, 2, 11)
	none := f.add(t, "No match", "Short", true, 5)

	resp, err := f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Sort: SortMatch})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{full.ID, half.ID, none.ID}, ids(resp.Items))

	resp, err = f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Sort: SortCompletion})
	require.NoError(t, err)
	// half and none tie on completion, so newest comes first.
	assert.Equal(t, []uuid.UUID{full.ID, none.ID, half.ID}, ids(resp.Items))
}

func TestBrowsePagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	viewer := f.add(t, "Viewer title", "Viewer bio that is long enough", true)
	var created []*domain.Profile
	for i := 0; i < 5; i++ {
		created = append(created, f.add(t, "Founder title", "Short", true))
	}

	resp, err := f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, []uuid.UUID{created[3].ID, created[2].ID}, ids(resp.Items))

	resp, err = f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Empty(t, resp.Items)

	_, err = f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Limit: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Offset: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Browse(ctx, viewer.ID, &BrowseRequest{Sort: "random"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBrowseInterestAndConnectionFlags(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	viewer := f.add(t, "Viewer title", "Viewer bio that is long enough", true)
	wanted := f.add(t, "Wanted founder", "Short", true)
	partner := f.add(t, "Partner founder", "Short", true)

	require.NoError(t, f.interests.Create(ctx, &domain.Interest{SenderID: viewer.ID, ReceiverID: wanted.ID, Status: domain.InterestStatusPending}))
	require.NoError(t, f.connections.Create(ctx, domain.NewConnection(viewer.ID, partner.ID)))

	resp, err := f.uc.Browse(ctx, viewer.ID, &BrowseRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, partner.ID, resp.Items[0].ID)
	assert.True(t, resp.Items[0].IsConnected)
	assert.False(t, resp.Items[0].HasSentInterest)
	assert.True(t, resp.Items[1].HasSentInterest)
	assert.False(t, resp.Items[1].IsConnected)

	resp, err = f.uc.Browse(ctx, viewer.ID, &BrowseRequest{ExcludeConnected: true})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{wanted.ID}, ids(resp.Items))
}

func TestBrowseWithoutOwnProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	other := f.add(t, "Some founder", "Short", true, 1)

	resp, err := f.uc.Browse(ctx, uuid.New(), &BrowseRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, other.ID, resp.Items[0].ID)
	assert.Equal(t, 0, resp.Items[0].MatchPercent)
}
