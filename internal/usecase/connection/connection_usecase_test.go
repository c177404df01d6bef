package connection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	mu    sync.Mutex
	intro string
	err   error
	calls []gemini.Founder
}

func (w *fakeWriter) GenerateConnectionIntro(_ context.Context, a, b gemini.Founder) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, a, b)
	return w.intro, w.err
}

type fixture struct {
	uc          *ConnectionUseCase
	profiles    *memory.ProfileRepository
	connections *memory.ConnectionRepository
}

func newFixture(writer IntroWriter) *fixture {
	tags := memory.NewTagRepository(memory.SystemTags()...)
	profiles := memory.NewProfileRepository(tags)
	connections := memory.NewConnectionRepository()
	uc := NewConnectionUseCase(connections, profiles, tags, writer, zap.NewNop())
	return &fixture{uc: uc, profiles: profiles, connections: connections}
}

func (f *fixture) addProfile(t *testing.T, name string, tagIDs ...int) uuid.UUID {
	t.Helper()
	p := &domain.Profile{ID: uuid.New(), Name: name, Title: name + " title", Tags: tagIDs, IsActive: true}
	p.Recalculate()
	userTags := make([]domain.UserTag, len(tagIDs))
	for i, id := range tagIDs {
		userTags[i] = domain.UserTag{TagID: id, TagType: domain.TagTypeMyAbility}
	}
	require.NoError(t, f.profiles.Create(context.Background(), p, userTags))
	return p.ID
}

func (f *fixture) connect(t *testing.T, a, b uuid.UUID, established time.Time) *domain.Connection {
	t.Helper()
	c := domain.NewConnection(a, b)
	c.EstablishedAt = established
	require.NoError(t, f.connections.Create(context.Background(), c))
	return c
}

func TestListConnections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return now }

	me := f.addProfile(t, "alice", 1)
	bob := f.addProfile(t, "bob", 11)
	carol := f.addProfile(t, "carol", 16)
	stranger := f.addProfile(t, "dan")

	f.connect(t, me, bob, now.Add(-5*24*time.Hour))
	f.connect(t, carol, me, now.Add(-time.Hour))
	f.connect(t, bob, stranger, now)

	list, err := f.uc.List(ctx, me, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "carol", list[0].Name)
	assert.Equal(t, 0, list[0].DaysSinceConnection)
	assert.Equal(t, "bob", list[1].Name)
	assert.Equal(t, 5, list[1].DaysSinceConnection)
	assert.Equal(t, domain.StageToContact, list[1].MyStage)
	assert.Equal(t, "AIGC", list[1].Tags[0].Name)

	archived, err := f.uc.List(ctx, me, "archived")
	require.NoError(t, err)
	assert.Empty(t, archived)

	_, err = f.uc.List(ctx, me, "deleted")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	me := f.addProfile(t, "alice")
	other := f.addProfile(t, "bob")
	stranger := f.addProfile(t, "carol")
	c := f.connect(t, me, other, time.Now())

	view, err := f.uc.UpdateStage(ctx, me, c.ID, &UpdateStageRequest{Stage: "met"})
	require.NoError(t, err)
	assert.Equal(t, domain.StageMet, view.MyStage)

	stored, err := f.connections.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageMet, stored.StageFor(me))
	assert.Equal(t, domain.StageToContact, stored.StageFor(other))

	_, err = f.uc.UpdateStage(ctx, me, c.ID, &UpdateStageRequest{Stage: "married"})
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"married"`)

	_, err = f.uc.UpdateStage(ctx, me, c.ID, &UpdateStageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStage(ctx, stranger, c.ID, &UpdateStageRequest{Stage: "met"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.UpdateStage(ctx, me, 999, &UpdateStageRequest{Stage: "met"})
	assert.ErrorIs(t, err, domain.ErrConnectionNotFound)
}

func TestArchive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	me := f.addProfile(t, "alice")
	other := f.addProfile(t, "bob")
	c := f.connect(t, me, other, time.Now())

	view, err := f.uc.Archive(ctx, other, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionStatusArchived, view.Status)
	assert.Equal(t, domain.StageArchived, view.MyStage)

	active, err := f.uc.List(ctx, me, "active")
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := f.uc.List(ctx, me, "archived")
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, domain.StageToContact, archived[0].MyStage)
}

func TestIntroduce(t *testing.T) {
	ctx := context.Background()
	writer := &fakeWriter{intro: "Alice builds models, Bob sells them."}
	f := newFixture(writer)
	a := f.addProfile(t, "alice", 1)
	b := f.addProfile(t, "bob", 8)
	c := f.connect(t, a, b, time.Now())

	f.uc.Introduce(ctx, c)

	stored, err := f.connections.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Intro)
	assert.Equal(t, "Alice builds models, Bob sells them.", *stored.Intro)
	require.Len(t, writer.calls, 2)
	assert.ElementsMatch(t, []string{"alice", "bob"}, []string{writer.calls[0].Name, writer.calls[1].Name})

	// An existing intro is never regenerated.
	f.uc.Introduce(ctx, stored)
	assert.Len(t, writer.calls, 2)
}

func TestIntroduceFailuresAreSilent(t *testing.T) {
	ctx := context.Background()
	writer := &fakeWriter{err: errors.New("quota exceeded")}
	f := newFixture(writer)
	a := f.addProfile(t, "alice")
	b := f.addProfile(t, "bob")
	c := f.connect(t, a, b, time.Now())

	f.uc.Introduce(ctx, c)

	stored, err := f.connections.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Intro)

	f = newFixture(nil)
	a = f.addProfile(t, "alice")
	b = f.addProfile(t, "bob")
	c = f.connect(t, a, b, time.Now())
	f.uc.Introduce(ctx, c)

	stored, err = f.connections.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Intro)
}
