package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BioAssistant drafts bios. The Gemini client implements it.
type BioAssistant interface {
	SuggestBios(ctx context.Context, name, title string, abilities []string) ([]string, error)
}

type ProfileUseCase struct {
	profileRepo    repository.ProfileRepository
	tagRepo        repository.TagRepository
	connectionRepo repository.ConnectionRepository
	interestRepo   repository.InterestRepository
	assistant      BioAssistant
	logger         *zap.Logger
}

// NewProfileUseCase accepts a nil assistant; SuggestBios then reports
// domain.ErrAssistantUnavailable.
func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	connectionRepo repository.ConnectionRepository,
	interestRepo repository.InterestRepository,
	assistant BioAssistant,
	logger *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:    profileRepo,
		tagRepo:        tagRepo,
		connectionRepo: connectionRepo,
		interestRepo:   interestRepo,
		assistant:      assistant,
		logger:         logger,
	}
}

// UpdateProfileRequest represents profile update request. Nil fields are left
// unchanged; an empty link clears it.
type UpdateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=20"`
	Title           *string `json:"title" binding:"omitempty,min=5,max=50"`
	Bio             *string `json:"bio" binding:"omitempty,max=200"`
	Vision          *string `json:"vision" binding:"omitempty,max=100"`
	Tags            *[]int  `json:"tags" binding:"omitempty,max=8,unique"`
	LinkedinURL     *string `json:"linkedin_url" binding:"omitempty,url_or_empty"`
	GithubURL       *string `json:"github_url" binding:"omitempty,url_or_empty"`
	PersonalWebsite *string `json:"personal_website" binding:"omitempty,url_or_empty"`
	IsActive        *bool   `json:"is_active"`
}

// ProfileResponse carries either the full profile or, when the viewer is not
// connected to its owner, the anonymous card.
type ProfileResponse struct {
	Revealed bool                  `json:"revealed"`
	Profile  *domain.ProfileView   `json:"profile,omitempty"`
	Card     *domain.AnonymousCard `json:"card,omitempty"`
}

type SuggestBiosRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=20"`
	Title       string `json:"title" binding:"required,min=5,max=50"`
	AbilityTags []int  `json:"ability_tags" binding:"max=5"`
}

type SuggestBiosResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.ProfileView, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, profile)
}

// UpdateProfile applies a partial update and recomputes completion.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*domain.ProfileView, error) {
	trim(req.Name, req.Title, req.Bio, req.Vision, req.LinkedinURL, req.GithubURL, req.PersonalWebsite)
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if req.Title != nil && *req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldTags := append([]int(nil), profile.Tags...)

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Title != nil {
		profile.Title = *req.Title
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Vision != nil {
		profile.Vision = *req.Vision
	}
	if req.Tags != nil {
		profile.Tags = *req.Tags
	}
	if req.LinkedinURL != nil {
		profile.LinkedinURL = link(*req.LinkedinURL)
	}
	if req.GithubURL != nil {
		profile.GithubURL = link(*req.GithubURL)
	}
	if req.PersonalWebsite != nil {
		profile.PersonalWebsite = link(*req.PersonalWebsite)
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}
	profile.Recalculate()

	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, profile)
	if err != nil {
		return nil, err
	}
	userTags := make([]domain.UserTag, 0, len(profile.Tags))
	for _, id := range profile.Tags {
		t, ok := tags[id]
		if !ok {
			return nil, fmt.Errorf("%w: tags: unknown tag %d", domain.ErrInvalidInput, id)
		}
		userTags = append(userTags, domain.UserTag{TagID: id, TagType: domain.TagTypeFor(t.Category)})
	}

	if err := uc.profileRepo.Update(ctx, profile, userTags); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	added, removed := diffTags(oldTags, profile.Tags)
	if len(added) > 0 || len(removed) > 0 {
		if err := uc.tagRepo.AdjustUsage(ctx, added, removed); err != nil {
			uc.logger.Warn("failed to adjust tag usage", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return domain.NewProfileView(profile, tags), nil
}

// GetProfile returns the full profile to its owner and to active
// connections, and the anonymous card to everyone else.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, viewerID, profileID uuid.UUID) (*ProfileResponse, error) {
	if viewerID == profileID {
		view, err := uc.GetMyProfile(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		return &ProfileResponse{Revealed: true, Profile: view}, nil
	}

	target, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, domain.ErrProfileNotFound
	}

	connected := false
	conn, err := uc.connectionRepo.GetByUsers(ctx, viewerID, profileID)
	switch {
	case err == nil:
		connected = conn.Status == domain.ConnectionStatusActive
	case !errors.Is(err, domain.ErrConnectionNotFound):
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	if connected {
		view, err := uc.view(ctx, target)
		if err != nil {
			return nil, err
		}
		return &ProfileResponse{Revealed: true, Profile: view}, nil
	}

	var viewerTags []int
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	switch {
	case err == nil:
		viewerTags = viewer.Tags
	case !errors.Is(err, domain.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, target)
	if err != nil {
		return nil, err
	}
	card := domain.NewAnonymousCard(target, tags, viewerTags)

	sent, err := uc.interestRepo.GetByUsers(ctx, viewerID, profileID)
	switch {
	case err == nil:
		card.HasSentInterest = sent != nil
	case !errors.Is(err, domain.ErrInterestNotFound):
		return nil, fmt.Errorf("failed to get interest: %w", err)
	}

	return &ProfileResponse{Card: card}, nil
}

// SuggestBios asks the assistant for bio drafts matching the onboarding
// limits.
func (uc *ProfileUseCase) SuggestBios(ctx context.Context, req *SuggestBiosRequest) (*SuggestBiosResponse, error) {
	if uc.assistant == nil {
		return nil, domain.ErrAssistantUnavailable
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}

	tags, err := uc.tagRepo.GetByIDs(ctx, req.AbilityTags)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	abilities := make([]string, 0, len(req.AbilityTags))
	for _, ref := range domain.TagRefs(req.AbilityTags, tags) {
		abilities = append(abilities, ref.Name)
	}

	suggestions, err := uc.assistant.SuggestBios(ctx, req.Name, req.Title, abilities)
	if err != nil {
		uc.logger.Warn("bio suggestion failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}
	return &SuggestBiosResponse{Suggestions: suggestions}, nil
}

func (uc *ProfileUseCase) view(ctx context.Context, p *domain.Profile) (*domain.ProfileView, error) {
	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, p)
	if err != nil {
		return nil, err
	}
	return domain.NewProfileView(p, tags), nil
}

func trim(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func link(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// diffTags reports ids present only in next (added) and only in prev
// (removed).
func diffTags(prev, next []int) (added, removed []int) {
	before := make(map[int]struct{}, len(prev))
	for _, id := range prev {
		before[id] = struct{}{}
	}
	after := make(map[int]struct{}, len(next))
	for _, id := range next {
		after[id] = struct{}{}
		if _, ok := before[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if _, ok := after[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
