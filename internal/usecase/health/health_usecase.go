package health

import (
	"context"
	"sync"
	"time"
)

const checkTimeout = 2 * time.Second

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type HealthUseCase struct {
	checkers []Checker
}

func NewHealthUseCase(checkers ...Checker) *HealthUseCase {
	return &HealthUseCase{checkers: checkers}
}

type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type ReadinessResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components"`
}

func (r *ReadinessResponse) Ready() bool {
	return r.Status == "ok"
}

// Readiness runs every checker concurrently, each under its own timeout.
func (uc *HealthUseCase) Readiness(ctx context.Context) *ReadinessResponse {
	resp := &ReadinessResponse{
		Status:     "ok",
		Components: make(map[string]ComponentStatus, len(uc.checkers)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, c := range uc.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			status := ComponentStatus{Status: "ok"}
			if err := c.Check(checkCtx); err != nil {
				status = ComponentStatus{Status: "unavailable", Error: err.Error()}
			}

			mu.Lock()
			defer mu.Unlock()
			resp.Components[c.Name()] = status
			if status.Status != "ok" {
				resp.Status = "unavailable"
			}
		}(c)
	}
	wg.Wait()

	return resp
}
