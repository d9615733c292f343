package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Bonus points granted when a referral code is applied at signup.
const (
	RefereeBonusPoints  = 5
	ReferrerBonusPoints = 10
)

var (
	ErrAlreadyReferred       = errors.New("user already has a referral")
	ErrReferralCodeExhausted = errors.New("could not generate an unused referral code")
)

// Referral links a referee to the referrer whose code they used at signup.
// Written exactly once per referee, never mutated.
type Referral struct {
	ID            uuid.UUID
	ReferrerID    uuid.UUID
	RefereeID     uuid.UUID
	PointsAwarded int
	CreatedAt     time.Time
}

// AttributionOutcome tags what happened to the referral code supplied at
// signup. Every outcome except AttributionApplied leaves the signup
// successful with no bonus on either side.
type AttributionOutcome string

const (
	AttributionNone          AttributionOutcome = "none"
	AttributionApplied       AttributionOutcome = "applied"
	AttributionNotFound      AttributionOutcome = "ignored-not-found"
	AttributionSelfReferral  AttributionOutcome = "ignored-self-referral"
	AttributionInvalidFormat AttributionOutcome = "ignored-invalid-format"
)
