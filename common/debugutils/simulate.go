package debugutils

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/globals"
)

// simulatedErrorBlueprint represents a blueprint for an error that can be simulated.
type simulatedErrorBlueprint struct {
	Code     string
	Category apierrors.ErrorCategory
	Message  string
}

var predefinedApplicationErrors = []simulatedErrorBlueprint{
	{Code: apierrors.ErrCodeServiceUnavailable, Category: apierrors.CategoryApplication, Message: "Simulated warehouse unavailability"},
	{Code: apierrors.ErrCodeCacheAccess, Category: apierrors.CategoryApplication, Message: "Simulated cache access error"},
	{Code: apierrors.ErrCodeInternalProcessing, Category: apierrors.CategoryApplication, Message: "Simulated internal processing error"},
	{Code: apierrors.ErrCodeNetworkError, Category: apierrors.CategoryApplication, Message: "Simulated network error"},
	{Code: apierrors.ErrCodeRequestTimeout, Category: apierrors.CategoryApplication, Message: "Simulated request timeout"},
}

var predefinedBusinessErrors = []simulatedErrorBlueprint{
	{Code: apierrors.ErrCodeProductNotFound, Category: apierrors.CategoryBusiness, Message: "Simulated product not found error"},
	{Code: apierrors.ErrCodeInsufficientStock, Category: apierrors.CategoryBusiness, Message: "Simulated insufficient stock error"},
}

// Simulate injects a configurable random delay and, optionally, a random
// business or application error. It is a no-op when configuration is absent
// (tests) or when the simulation switches are off.
func Simulate(ctx context.Context) *apierrors.AppError {
	cfg := globals.GetCfg()
	if cfg == nil {
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if cfg.SIMULATE_DELAY_ENABLED {
		if cfg.SIMULATE_DELAY_MIN_MS >= 0 && cfg.SIMULATE_DELAY_MAX_MS > cfg.SIMULATE_DELAY_MIN_MS {
			delayRange := cfg.SIMULATE_DELAY_MAX_MS - cfg.SIMULATE_DELAY_MIN_MS
			randomDelayMs := rng.Intn(delayRange+1) + cfg.SIMULATE_DELAY_MIN_MS
			select {
			case <-time.After(time.Duration(randomDelayMs) * time.Millisecond):
			case <-ctx.Done():
				return nil
			}
		}
	}

	if !cfg.SIMULATE_RANDOM_ERROR_ENABLED {
		return nil
	}

	overallErrorChance := cfg.SIMULATE_OVERALL_ERROR_CHANCE
	if overallErrorChance <= 0 || overallErrorChance > 1.0 {
		overallErrorChance = 0.1
	}

	if rng.Float64() >= overallErrorChance {
		return nil
	}

	appWeight := max(cfg.SIMULATE_APPLICATION_ERROR_WEIGHT, 0)
	bizWeight := max(cfg.SIMULATE_BUSINESS_ERROR_WEIGHT, 0)
	if appWeight+bizWeight == 0 {
		return nil
	}

	var chosen simulatedErrorBlueprint
	if rng.Intn(appWeight+bizWeight) < appWeight {
		chosen = predefinedApplicationErrors[rng.Intn(len(predefinedApplicationErrors))]
	} else {
		chosen = predefinedBusinessErrors[rng.Intn(len(predefinedBusinessErrors))]
	}

	errMsg := fmt.Sprintf("%s from debug utils", chosen.Message)
	if chosen.Category == apierrors.CategoryBusiness {
		return apierrors.NewBusinessError(chosen.Code, errMsg, nil)
	}
	return apierrors.NewApplicationError(chosen.Code, errMsg, nil)
}
