package interest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Connector describes and enriches connections. The connection use case
// implements it.
type Connector interface {
	Describe(ctx context.Context, userID uuid.UUID, conn *domain.Connection) (*domain.ConnectedUser, error)
	Introduce(ctx context.Context, conn *domain.Connection)
}

type InterestUseCase struct {
	interestRepo   repository.InterestRepository
	profileRepo    repository.ProfileRepository
	connectionRepo repository.ConnectionRepository
	tagRepo        repository.TagRepository
	connector      Connector
	logger         *zap.Logger
	now            func() time.Time

	// intros tracks background intro generation.
	intros sync.WaitGroup
}

func NewInterestUseCase(
	interestRepo repository.InterestRepository,
	profileRepo repository.ProfileRepository,
	connectionRepo repository.ConnectionRepository,
	tagRepo repository.TagRepository,
	connector Connector,
	logger *zap.Logger,
) *InterestUseCase {
	return &InterestUseCase{
		interestRepo:   interestRepo,
		profileRepo:    profileRepo,
		connectionRepo: connectionRepo,
		tagRepo:        tagRepo,
		connector:      connector,
		logger:         logger,
		now:            time.Now,
	}
}

type SendInterestRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
}

type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// MatchResult is returned by Send and Respond. Connection and Counterpart are
// set only when the interest completed a mutual match.
type MatchResult struct {
	Matched     bool                  `json:"matched"`
	Interest    *domain.Interest      `json:"interest"`
	Connection  *domain.Connection    `json:"connection,omitempty"`
	Counterpart *domain.ConnectedUser `json:"counterpart,omitempty"`
}

type ReceivedInterest struct {
	ID          int                   `json:"id"`
	Status      domain.InterestStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	RespondedAt *time.Time            `json:"responded_at"`
	Sender      *domain.AnonymousCard `json:"sender"`
}

type ReceivedResponse struct {
	Items        []*ReceivedInterest `json:"items"`
	PendingCount int                 `json:"pending_count"`
}

type SentInterest struct {
	ID          int                   `json:"id"`
	Status      domain.InterestStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	RespondedAt *time.Time            `json:"responded_at"`
	Receiver    *domain.AnonymousCard `json:"receiver"`
}

type SentResponse struct {
	Items []*SentInterest `json:"items"`
}

// Send records senderID's interest in the receiver. If the receiver already
// expressed interest back, both interests are accepted and a connection is
// created.
func (uc *InterestUseCase) Send(ctx context.Context, senderID uuid.UUID, req *SendInterestRequest) (*MatchResult, error) {
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}
	if senderID == req.ReceiverID {
		return nil, domain.ErrCannotInterestSelf
	}

	if _, err := uc.profileRepo.GetByID(ctx, senderID); err != nil {
		return nil, err
	}
	receiver, err := uc.profileRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !receiver.IsActive {
		return nil, domain.ErrProfileNotFound
	}

	interest := &domain.Interest{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Status:     domain.InterestStatusPending,
	}
	if err := uc.interestRepo.Create(ctx, interest); err != nil {
		if errors.Is(err, domain.ErrInterestAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}

	reverse, err := uc.interestRepo.GetByUsers(ctx, req.ReceiverID, senderID)
	if err != nil {
		if errors.Is(err, domain.ErrInterestNotFound) {
			return &MatchResult{Interest: interest}, nil
		}
		return nil, fmt.Errorf("failed to get reverse interest: %w", err)
	}
	if !reverse.CountsTowardMatch() {
		return &MatchResult{Interest: interest}, nil
	}

	return uc.match(ctx, senderID, interest, reverse)
}

// Respond lets the receiver accept or reject a pending interest. Accepting
// records the reciprocal interest and creates the connection.
func (uc *InterestUseCase) Respond(ctx context.Context, userID uuid.UUID, interestID int, req *RespondRequest) (*MatchResult, error) {
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}

	interest, err := uc.interestRepo.GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}
	if interest.ReceiverID != userID {
		return nil, domain.ErrForbidden
	}
	if interest.Status != domain.InterestStatusPending {
		return nil, domain.ErrInterestNotPending
	}

	if !*req.Accept {
		now := uc.now().UTC()
		if err := uc.interestRepo.UpdateStatus(ctx, interest.ID, domain.InterestStatusRejected, now); err != nil {
			return nil, fmt.Errorf("failed to reject interest: %w", err)
		}
		interest.Status = domain.InterestStatusRejected
		interest.RespondedAt = &now
		return &MatchResult{Interest: interest}, nil
	}

	reply, err := uc.reciprocate(ctx, userID, interest.SenderID)
	if err != nil {
		return nil, err
	}
	result, err := uc.match(ctx, userID, reply, interest)
	if err != nil {
		return nil, err
	}
	// The caller responded to interest, so report that one.
	result.Interest = interest
	return result, nil
}

// ListReceived returns incoming interests of the given status (pending when
// empty) along with the number still pending.
func (uc *InterestUseCase) ListReceived(ctx context.Context, userID uuid.UUID, status string) (*ReceivedResponse, error) {
	st := domain.InterestStatus(status)
	if status == "" {
		st = domain.InterestStatusPending
	}
	if !st.Valid() {
		return nil, fmt.Errorf("%w: status must be pending, accepted or rejected", domain.ErrInvalidInput)
	}

	interests, err := uc.interestRepo.ListReceived(ctx, userID, st)
	if err != nil {
		return nil, fmt.Errorf("failed to list received interests: %w", err)
	}

	pendingCount := len(interests)
	if st != domain.InterestStatusPending {
		pending, err := uc.interestRepo.ListReceived(ctx, userID, domain.InterestStatusPending)
		if err != nil {
			return nil, fmt.Errorf("failed to list pending interests: %w", err)
		}
		pendingCount = len(pending)
	}

	senders := make([]uuid.UUID, len(interests))
	for i, in := range interests {
		senders[i] = in.SenderID
	}
	cards, err := uc.cards(ctx, userID, senders)
	if err != nil {
		return nil, err
	}

	items := make([]*ReceivedInterest, 0, len(interests))
	for _, in := range interests {
		card, ok := cards[in.SenderID]
		if !ok {
			continue
		}
		items = append(items, &ReceivedInterest{
			ID:          in.ID,
			Status:      in.Status,
			CreatedAt:   in.CreatedAt,
			RespondedAt: in.RespondedAt,
			Sender:      card,
		})
	}

	return &ReceivedResponse{Items: items, PendingCount: pendingCount}, nil
}

// ListSent returns the caller's outgoing interests, newest first.
func (uc *InterestUseCase) ListSent(ctx context.Context, userID uuid.UUID) (*SentResponse, error) {
	interests, err := uc.interestRepo.ListSent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent interests: %w", err)
	}

	receivers := make([]uuid.UUID, len(interests))
	for i, in := range interests {
		receivers[i] = in.ReceiverID
	}
	cards, err := uc.cards(ctx, userID, receivers)
	if err != nil {
		return nil, err
	}

	items := make([]*SentInterest, 0, len(interests))
	for _, in := range interests {
		card, ok := cards[in.ReceiverID]
		if !ok {
			continue
		}
		items = append(items, &SentInterest{
			ID:          in.ID,
			Status:      in.Status,
			CreatedAt:   in.CreatedAt,
			RespondedAt: in.RespondedAt,
			Receiver:    card,
		})
	}
	return &SentResponse{Items: items}, nil
}

// Wait blocks until background intro generation has finished.
func (uc *InterestUseCase) Wait() {
	uc.intros.Wait()
}

// reciprocate returns userID's interest in otherID, creating it when absent.
func (uc *InterestUseCase) reciprocate(ctx context.Context, userID, otherID uuid.UUID) (*domain.Interest, error) {
	existing, err := uc.interestRepo.GetByUsers(ctx, userID, otherID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrInterestNotFound) {
		return nil, fmt.Errorf("failed to get interest: %w", err)
	}

	reply := &domain.Interest{
		SenderID:   userID,
		ReceiverID: otherID,
		Status:     domain.InterestStatusPending,
	}
	if err := uc.interestRepo.Create(ctx, reply); err != nil {
		if errors.Is(err, domain.ErrInterestAlreadyExists) {
			return uc.interestRepo.GetByUsers(ctx, userID, otherID)
		}
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}
	return reply, nil
}

// match accepts both interests and creates the connection for the pair.
// own belongs to userID, other is the counterpart's interest in userID.
func (uc *InterestUseCase) match(ctx context.Context, userID uuid.UUID, own, other *domain.Interest) (*MatchResult, error) {
	now := uc.now().UTC()
	for _, in := range []*domain.Interest{own, other} {
		if err := uc.interestRepo.UpdateStatus(ctx, in.ID, domain.InterestStatusAccepted, now); err != nil {
			return nil, fmt.Errorf("failed to accept interest: %w", err)
		}
		in.Status = domain.InterestStatusAccepted
		in.RespondedAt = &now
	}

	conn := domain.NewConnection(own.SenderID, own.ReceiverID)
	conn.EstablishedAt = now
	if err := uc.connectionRepo.Create(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	uc.logger.Info("connection established",
		zap.Int("connection_id", conn.ID),
		zap.String("user_a_id", conn.UserAID.String()),
		zap.String("user_b_id", conn.UserBID.String()),
	)

	counterpart, err := uc.connector.Describe(ctx, userID, conn)
	if err != nil {
		return nil, err
	}

	if conn.Intro == nil {
		snapshot := *conn
		uc.intros.Add(1)
		go func() {
			defer uc.intros.Done()
			uc.connector.Introduce(context.WithoutCancel(ctx), &snapshot)
		}()
	}

	return &MatchResult{
		Matched:     true,
		Interest:    own,
		Connection:  conn,
		Counterpart: counterpart,
	}, nil
}

// cards builds anonymous cards of the given users as seen by viewerID.
func (uc *InterestUseCase) cards(ctx context.Context, viewerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.AnonymousCard, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*domain.AnonymousCard{}, nil
	}

	lookup := append(append(make([]uuid.UUID, 0, len(ids)+1), ids...), viewerID)
	profiles, err := uc.profileRepo.GetByIDs(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	var viewerTags []int
	if viewer, ok := profiles[viewerID]; ok {
		viewerTags = viewer.Tags
	}

	list := make([]*domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		list = append(list, p)
	}
	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, list...)
	if err != nil {
		return nil, err
	}

	sent, err := uc.interestRepo.ListSent(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent interests: %w", err)
	}
	sentTo := make(map[uuid.UUID]struct{}, len(sent))
	for _, in := range sent {
		sentTo[in.ReceiverID] = struct{}{}
	}

	connections, err := uc.connectionRepo.ListByUser(ctx, viewerID, domain.ConnectionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	connected := make(map[uuid.UUID]struct{}, len(connections))
	for _, c := range connections {
		if other, ok := c.GetOtherUserID(viewerID); ok {
			connected[other] = struct{}{}
		}
	}

	cards := make(map[uuid.UUID]*domain.AnonymousCard, len(ids))
	for _, id := range ids {
		p, ok := profiles[id]
		if !ok || id == viewerID {
			continue
		}
		card := domain.NewAnonymousCard(p, tags, viewerTags)
		_, card.HasSentInterest = sentTo[id]
		_, card.IsConnected = connected[id]
		cards[id] = card
	}
	return cards, nil
}
