package onboarding

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

type OnboardingUseCase struct {
	draftRepo   repository.DraftRepository
	profileRepo repository.ProfileRepository
	tagRepo     repository.TagRepository
	logger      *zap.Logger
}

func NewOnboardingUseCase(
	draftRepo repository.DraftRepository,
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	logger *zap.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		draftRepo:   draftRepo,
		profileRepo: profileRepo,
		tagRepo:     tagRepo,
		logger:      logger,
	}
}

// Step1Request is the basic information step.
type Step1Request struct {
	Name  string `json:"name" binding:"required,min=2,max=20"`
	Title string `json:"title" binding:"required,min=5,max=50"`
	Bio   string `json:"bio" binding:"required,min=20,max=200"`
}

// Step2Request is the abilities and vision step.
type Step2Request struct {
	AbilityTags []int  `json:"ability_tags" binding:"required,min=1,max=5,unique"`
	Vision      string `json:"vision" binding:"required,min=10,max=100"`
}

// Step3Request is the role and direction step.
type Step3Request struct {
	RoleTag       int   `json:"role_tag" binding:"required,gt=0"`
	DirectionTags []int `json:"direction_tags" binding:"required,min=1,max=3,unique"`
}

type DraftResponse struct {
	Step1          *domain.OnboardingStep1 `json:"step1"`
	Step2          *domain.OnboardingStep2 `json:"step2"`
	Step3          *domain.OnboardingStep3 `json:"step3"`
	CompletedSteps []int                   `json:"completed_steps"`
	IsComplete     bool                    `json:"is_complete"`
}

type StepResponse struct {
	Step      int  `json:"step"`
	Completed bool `json:"completed"`
	Data      any  `json:"data"`
}

func (uc *OnboardingUseCase) GetDraft(ctx context.Context, userID uuid.UUID) (*DraftResponse, error) {
	draft, err := uc.draftRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return newDraftResponse(draft), nil
}

// GetStep returns one stored step; Data is null until the step is saved.
func (uc *OnboardingUseCase) GetStep(ctx context.Context, userID uuid.UUID, step int) (*StepResponse, error) {
	draft, err := uc.draftRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	resp := &StepResponse{Step: step}
	switch step {
	case 1:
		resp.Completed = draft.Step1 != nil
		if resp.Completed {
			resp.Data = draft.Step1
		}
	case 2:
		resp.Completed = draft.Step2 != nil
		if resp.Completed {
			resp.Data = draft.Step2
		}
	case 3:
		resp.Completed = draft.Step3 != nil
		if resp.Completed {
			resp.Data = draft.Step3
		}
	default:
		return nil, fmt.Errorf("%w: step must be 1, 2 or 3", domain.ErrInvalidInput)
	}
	return resp, nil
}

func (uc *OnboardingUseCase) SaveStep1(ctx context.Context, userID uuid.UUID, req *Step1Request) (*DraftResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)
	req.Bio = strings.TrimSpace(req.Bio)
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}

	return uc.update(ctx, userID, func(d *domain.OnboardingDraft) {
		d.Step1 = &domain.OnboardingStep1{Name: req.Name, Title: req.Title, Bio: req.Bio}
	})
}

func (uc *OnboardingUseCase) SaveStep2(ctx context.Context, userID uuid.UUID, req *Step2Request) (*DraftResponse, error) {
	req.Vision = strings.TrimSpace(req.Vision)
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}
	if err := usecase.CheckTagCategory(ctx, uc.tagRepo, "ability_tags", domain.TagCategoryAbility, req.AbilityTags); err != nil {
		return nil, err
	}

	return uc.update(ctx, userID, func(d *domain.OnboardingDraft) {
		d.Step2 = &domain.OnboardingStep2{AbilityTags: req.AbilityTags, Vision: req.Vision}
	})
}

func (uc *OnboardingUseCase) SaveStep3(ctx context.Context, userID uuid.UUID, req *Step3Request) (*DraftResponse, error) {
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}
	if err := usecase.CheckTagCategory(ctx, uc.tagRepo, "role_tag", domain.TagCategoryRole, []int{req.RoleTag}); err != nil {
		return nil, err
	}
	if err := usecase.CheckTagCategory(ctx, uc.tagRepo, "direction_tags", domain.TagCategoryDirection, req.DirectionTags); err != nil {
		return nil, err
	}

	return uc.update(ctx, userID, func(d *domain.OnboardingDraft) {
		d.Step3 = &domain.OnboardingStep3{RoleTag: req.RoleTag, DirectionTags: req.DirectionTags}
	})
}

// Complete turns a finished draft into the user's profile.
func (uc *OnboardingUseCase) Complete(ctx context.Context, userID uuid.UUID) (*domain.ProfileView, error) {
	if _, err := uc.profileRepo.GetByID(ctx, userID); err == nil {
		return nil, domain.ErrProfileAlreadyExists
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	draft, err := uc.draftRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	if !draft.IsComplete() {
		return nil, domain.ErrOnboardingIncomplete
	}

	// Tags may have changed since the steps were saved.
	if err := usecase.CheckTagCategory(ctx, uc.tagRepo, "ability_tags", domain.TagCategoryAbility, draft.Step2.AbilityTags); err != nil {
		return nil, err
	}
	if err := usecase.CheckTagCategory(ctx, uc.tagRepo, "direction_tags", domain.TagCategoryDirection, draft.Step3.DirectionTags); err != nil {
		return nil, err
	}
	if err := usecase.CheckTagCategory(ctx, uc.tagRepo, "role_tag", domain.TagCategoryRole, []int{draft.Step3.RoleTag}); err != nil {
		return nil, err
	}

	profile, userTags := draft.BuildProfile(userID)
	if err := uc.profileRepo.Create(ctx, profile, userTags); err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := uc.tagRepo.AdjustUsage(ctx, profile.Tags, nil); err != nil {
		uc.logger.Warn("failed to bump tag usage", zap.String("user_id", userID.String()), zap.Error(err))
	}
	if err := uc.draftRepo.Delete(ctx, userID); err != nil {
		uc.logger.Warn("failed to delete onboarding draft", zap.String("user_id", userID.String()), zap.Error(err))
	}

	tags, err := usecase.ResolveTags(ctx, uc.tagRepo, profile)
	if err != nil {
		return nil, err
	}
	return domain.NewProfileView(profile, tags), nil
}

func (uc *OnboardingUseCase) update(ctx context.Context, userID uuid.UUID, apply func(*domain.OnboardingDraft)) (*DraftResponse, error) {
	draft, err := uc.draftRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	apply(draft)
	if err := uc.draftRepo.Save(ctx, userID, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return newDraftResponse(draft), nil
}

func newDraftResponse(d *domain.OnboardingDraft) *DraftResponse {
	return &DraftResponse{
		Step1:          d.Step1,
		Step2:          d.Step2,
		Step3:          d.Step3,
		CompletedSteps: d.CompletedSteps(),
		IsComplete:     d.IsComplete(),
	}
}
