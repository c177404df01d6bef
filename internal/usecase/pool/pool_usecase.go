package pool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/google/uuid"
)

const (
	SortNewest     = "newest"
	SortMatch      = "match"
	SortCompletion = "completion"

	defaultLimit = 20
)

type PoolUseCase struct {
	profileRepo    repository.ProfileRepository
	tagRepo        repository.TagRepository
	interestRepo   repository.InterestRepository
	connectionRepo repository.ConnectionRepository
}

func NewPoolUseCase(
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	interestRepo repository.InterestRepository,
	connectionRepo repository.ConnectionRepository,
) *PoolUseCase {
	return &PoolUseCase{
		profileRepo:    profileRepo,
		tagRepo:        tagRepo,
		interestRepo:   interestRepo,
		connectionRepo: connectionRepo,
	}
}

// BrowseRequest is bound from the query string.
type BrowseRequest struct {
	Tags             []int  `form:"tags" json:"tags" binding:"max=10"`
	Category         string `form:"category" json:"category" binding:"omitempty,oneof=ability direction role"`
	Query            string `form:"q" json:"q" binding:"max=100"`
	MinCompletion    int    `form:"min_completion" json:"min_completion" binding:"min=0,max=100"`
	ExcludeConnected bool   `form:"exclude_connected" json:"exclude_connected"`
	Sort             string `form:"sort" json:"sort" binding:"omitempty,oneof=newest match completion"`
	Limit            int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
	Offset           int    `form:"offset" json:"offset" binding:"min=0"`
}

type BrowseResponse struct {
	Items  []*domain.AnonymousCard `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// Browse lists the anonymous cards of every other active profile matching
// the filter. Total counts matches before pagination.
func (uc *PoolUseCase) Browse(ctx context.Context, viewerID uuid.UUID, req *BrowseRequest) (*BrowseResponse, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}
	if req.Sort == "" {
		req.Sort = SortNewest
	}

	var viewerTags []int
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	switch {
	case err == nil:
		viewerTags = viewer.Tags
	case !errors.Is(err, domain.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	profiles, err := uc.profileRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	sent, err := uc.sentTo(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	connected, err := uc.connectedTo(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, profiles...)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(req.Query)
	cards := make([]*domain.AnonymousCard, 0, len(profiles))
	for _, p := range profiles {
		if p.ID == viewerID {
			continue
		}
		_, isConnected := connected[p.ID]
		if req.ExcludeConnected && isConnected {
			continue
		}
		if p.Completion < req.MinCompletion {
			continue
		}
		if !hasAllTags(p, req.Tags) {
			continue
		}
		if req.Category != "" && !hasCategory(p, tags, domain.TagCategory(req.Category)) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}

		card := domain.NewAnonymousCard(p, tags, viewerTags)
		_, card.HasSentInterest = sent[p.ID]
		card.IsConnected = isConnected
		cards = append(cards, card)
	}

	sortCards(cards, req.Sort)

	total := len(cards)
	start := min(req.Offset, total)
	end := min(start+req.Limit, total)

	return &BrowseResponse{
		Items:  cards[start:end],
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}, nil
}

func (uc *PoolUseCase) sentTo(ctx context.Context, viewerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	interests, err := uc.interestRepo.ListSent(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent interests: %w", err)
	}
	ids := make(map[uuid.UUID]struct{}, len(interests))
	for _, i := range interests {
		ids[i.ReceiverID] = struct{}{}
	}
	return ids, nil
}

func (uc *PoolUseCase) connectedTo(ctx context.Context, viewerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	connections, err := uc.connectionRepo.ListByUser(ctx, viewerID, domain.ConnectionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	ids := make(map[uuid.UUID]struct{}, len(connections))
	for _, c := range connections {
		if other, ok := c.GetOtherUserID(viewerID); ok {
			ids[other] = struct{}{}
		}
	}
	return ids, nil
}

func hasAllTags(p *domain.Profile, want []int) bool {
	for _, id := range want {
		if !p.HasTag(id) {
			return false
		}
	}
	return true
}

func hasCategory(p *domain.Profile, tags map[int]*domain.Tag, category domain.TagCategory) bool {
	for _, id := range p.Tags {
		if t, ok := tags[id]; ok && t.Category == category {
			return true
		}
	}
	return false
}

// matchesQuery expects query already lower-cased.
func matchesQuery(p *domain.Profile, query string) bool {
	for _, field := range []string{p.Title, p.Bio, p.Vision} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// sortCards orders in place. Cards arrive newest first, and the stable sort
// keeps that as the tie-break.
func sortCards(cards []*domain.AnonymousCard, by string) {
	switch by {
	case SortMatch:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].MatchPercent > cards[j].MatchPercent
		})
	case SortCompletion:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Completion > cards[j].Completion
		})
	default:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreatedAt.After(cards[j].CreatedAt)
		})
	}
}
