package entitlements

import (
	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/internal/pkg/subscription"
)

type Feature string

const (
	FeatureResumeOptimizer Feature = "resume_optimizer"
	FeatureJobMatching     Feature = "job_matching"
	FeatureInterviewCoach  Feature = "interview_coach"
)

// AllowedFeatures returns which apps a subscription status unlocks. Trials
// get the full platform; only the interview coach is held back for paying
// subscribers.
func AllowedFeatures(status models.SubscriptionStatus) (resume, matching, coach bool) {
	switch status {
	case models.SubscriptionActive:
		return true, true, true
	case models.SubscriptionTrial:
		return true, true, false
	default:
		return false, false, false
	}
}

// CanUse combines the effective status check with the per-feature allowance.
// An invalid check unlocks nothing regardless of the stored status.
func CanUse(check subscription.Check, feature Feature) bool {
	if !check.IsValid {
		return false
	}
	resume, matching, coach := AllowedFeatures(check.Status)
	switch feature {
	case FeatureResumeOptimizer:
		return resume
	case FeatureJobMatching:
		return matching
	case FeatureInterviewCoach:
		return coach
	default:
		return false
	}
}
