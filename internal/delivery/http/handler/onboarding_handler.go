package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// GetDraft handles GET /onboarding
func (h *OnboardingHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.onboardingUseCase.GetDraft(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// GetStep handles GET /onboarding/steps/:step
func (h *OnboardingHandler) GetStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: step must be 1, 2 or 3", domain.ErrInvalidInput))
		return
	}

	resp, err := h.onboardingUseCase.GetStep(c.Request.Context(), userID, step)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SaveStep handles PUT /onboarding/steps/:step
// @Summary Save onboarding step
// @Description Validate and store one of the three onboarding steps
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param step path int true "Step number (1-3)"
// @Success 200 {object} onboarding.DraftResponse
// @Failure 400 {object} ErrorResponse
// @Router /onboarding/steps/{step} [put]
func (h *OnboardingHandler) SaveStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		draft *onboarding.DraftResponse
		err   error
	)
	switch c.Param("step") {
	case "1":
		var req onboarding.Step1Request
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, usecase.ValidationError(err))
			return
		}
		draft, err = h.onboardingUseCase.SaveStep1(ctx, userID, &req)
	case "2":
		var req onboarding.Step2Request
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, usecase.ValidationError(err))
			return
		}
		draft, err = h.onboardingUseCase.SaveStep2(ctx, userID, &req)
	case "3":
		var req onboarding.Step3Request
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, usecase.ValidationError(err))
			return
		}
		draft, err = h.onboardingUseCase.SaveStep3(ctx, userID, &req)
	default:
		respondError(c, fmt.Errorf("%w: step must be 1, 2 or 3", domain.ErrInvalidInput))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// Complete handles POST /onboarding/complete
// @Summary Complete onboarding
// @Description Create the profile from the saved steps
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 201 {object} domain.ProfileView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.onboardingUseCase.Complete(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}
