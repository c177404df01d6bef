package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const introTimeout = 20 * time.Second

// IntroWriter drafts the introduction stored on a new connection.
type IntroWriter interface {
	GenerateConnectionIntro(ctx context.Context, a, b gemini.Founder) (string, error)
}

type ConnectionUseCase struct {
	connectionRepo repository.ConnectionRepository
	profileRepo    repository.ProfileRepository
	tagRepo        repository.TagRepository
	writer         IntroWriter
	logger         *zap.Logger
	now            func() time.Time
}

// NewConnectionUseCase accepts a nil writer, in which case connections are
// stored without an intro.
func NewConnectionUseCase(
	connectionRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	writer IntroWriter,
	logger *zap.Logger,
) *ConnectionUseCase {
	return &ConnectionUseCase{
		connectionRepo: connectionRepo,
		profileRepo:    profileRepo,
		tagRepo:        tagRepo,
		writer:         writer,
		logger:         logger,
		now:            time.Now,
	}
}

type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// List returns the caller's connections with the other side revealed,
// newest first. An empty status means active.
func (uc *ConnectionUseCase) List(ctx context.Context, userID uuid.UUID, status string) ([]*domain.ConnectedUser, error) {
	st := domain.ConnectionStatus(status)
	if status == "" {
		st = domain.ConnectionStatusActive
	}
	if !st.Valid() {
		return nil, fmt.Errorf("%w: status must be active or archived", domain.ErrInvalidInput)
	}

	connections, err := uc.connectionRepo.ListByUser(ctx, userID, st)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return uc.describe(ctx, userID, connections...)
}

// UpdateStage sets the caller's own stage label.
func (uc *ConnectionUseCase) UpdateStage(ctx context.Context, userID uuid.UUID, connectionID int, req *UpdateStageRequest) (*domain.ConnectedUser, error) {
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}
	if !domain.Stage(req.Stage).Valid() {
		return nil, fmt.Errorf("%w: %q, must be one of to_contact, met, ongoing, archived", domain.ErrInvalidStage, req.Stage)
	}

	conn, err := uc.participantConnection(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	conn.SetStage(userID, domain.Stage(req.Stage))

	if err := uc.connectionRepo.Update(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to update connection: %w", err)
	}
	return uc.describeOne(ctx, userID, conn)
}

// Archive moves the connection to archived and marks the caller's side.
func (uc *ConnectionUseCase) Archive(ctx context.Context, userID uuid.UUID, connectionID int) (*domain.ConnectedUser, error) {
	conn, err := uc.participantConnection(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	conn.Status = domain.ConnectionStatusArchived
	conn.SetStage(userID, domain.StageArchived)

	if err := uc.connectionRepo.Update(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to update connection: %w", err)
	}
	return uc.describeOne(ctx, userID, conn)
}

// Introduce generates and stores the connection intro. Failures are logged
// only; a missing intro never affects the connection.
func (uc *ConnectionUseCase) Introduce(ctx context.Context, conn *domain.Connection) {
	if uc.writer == nil || conn.Intro != nil {
		return
	}
	log := uc.logger.With(zap.Int("connection_id", conn.ID))

	profiles, err := uc.profileRepo.GetByIDs(ctx, []uuid.UUID{conn.UserAID, conn.UserBID})
	if err != nil {
		log.Warn("intro skipped: failed to load profiles", zap.Error(err))
		return
	}
	a, okA := profiles[conn.UserAID]
	b, okB := profiles[conn.UserBID]
	if !okA || !okB {
		log.Warn("intro skipped: profile missing")
		return
	}

	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, a, b)
	if err != nil {
		log.Warn("intro skipped: failed to load tags", zap.Error(err))
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, introTimeout)
	defer cancel()

	intro, err := uc.writer.GenerateConnectionIntro(genCtx, founder(a, tags), founder(b, tags))
	if err != nil {
		log.Warn("intro generation failed", zap.Error(err))
		return
	}

	if err := uc.connectionRepo.UpdateIntro(ctx, conn.ID, intro); err != nil {
		log.Warn("failed to store intro", zap.Error(err))
		return
	}
	log.Debug("intro stored")
}

// Describe builds the caller's view of a single connection.
func (uc *ConnectionUseCase) Describe(ctx context.Context, userID uuid.UUID, conn *domain.Connection) (*domain.ConnectedUser, error) {
	return uc.describeOne(ctx, userID, conn)
}

func (uc *ConnectionUseCase) participantConnection(ctx context.Context, userID uuid.UUID, connectionID int) (*domain.Connection, error) {
	conn, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.HasUser(userID) {
		return nil, domain.ErrForbidden
	}
	return conn, nil
}

func (uc *ConnectionUseCase) describeOne(ctx context.Context, userID uuid.UUID, conn *domain.Connection) (*domain.ConnectedUser, error) {
	views, err := uc.describe(ctx, userID, conn)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return views[0], nil
}

func (uc *ConnectionUseCase) describe(ctx context.Context, userID uuid.UUID, connections ...*domain.Connection) ([]*domain.ConnectedUser, error) {
	otherIDs := make([]uuid.UUID, 0, len(connections))
	for _, c := range connections {
		if other, ok := c.GetOtherUserID(userID); ok {
			otherIDs = append(otherIDs, other)
		}
	}
	if len(otherIDs) == 0 {
		return []*domain.ConnectedUser{}, nil
	}

	profiles, err := uc.profileRepo.GetByIDs(ctx, otherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	list := make([]*domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		list = append(list, p)
	}
	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, list...)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	views := make([]*domain.ConnectedUser, 0, len(connections))
	for _, c := range connections {
		other, _ := c.GetOtherUserID(userID)
		p, ok := profiles[other]
		if !ok {
			uc.logger.Warn("connection without profile", zap.Int("connection_id", c.ID), zap.String("user_id", other.String()))
			continue
		}
		views = append(views, domain.NewConnectedUser(c, userID, p, tags, now))
	}
	return views, nil
}

func founder(p *domain.Profile, tags map[int]*domain.Tag) gemini.Founder {
	refs := domain.TagRefs(p.Tags, tags)
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return gemini.Founder{
		Name:   p.Name,
		Title:  p.Title,
		Bio:    p.Bio,
		Vision: p.Vision,
		Tags:   names,
	}
}
