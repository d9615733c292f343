package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pointpal/internal/domain"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// GenerateCode builds a referral code from the first three characters of
// the name, upper-cased, plus a zero-padded random three-digit number.
// Names shorter than three characters yield a shorter prefix.
func GenerateCode(name string) string {
	prefix := []rune(name)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s%03d", strings.ToUpper(string(prefix)), rand.IntN(1000))
}

// IsValidCode reports whether code is exactly three uppercase letters
// followed by three digits.
func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

func randomPrefix() string {
	b := make([]byte, 3)
	for i := range b {
		b[i] = byte('A' + rand.IntN(26))
	}
	return string(b)
}

// ReferralEngine generates referral codes and attributes signups to
// referrers.
type ReferralEngine struct {
	users     UserRepository
	referrals ReferralRepository
}

func NewReferralEngine(users UserRepository, referrals ReferralRepository) *ReferralEngine {
	return &ReferralEngine{users: users, referrals: referrals}
}

const codeAttempts = 10

// UniqueCode generates a code not held by any existing user, regenerating
// on collision. After half the attempts the name prefix is abandoned for a
// random one so short alphabets cannot pin the loop.
func (e *ReferralEngine) UniqueCode(ctx context.Context, name string) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		prefix := name
		if i >= codeAttempts/2 {
			prefix = randomPrefix()
		}
		code := GenerateCode(prefix)
		_, err := e.users.GetByReferralCode(ctx, code)
		if errors.Is(err, domain.ErrUserNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", domain.ErrReferralCodeExhausted
}

// Attribute resolves the referral code supplied at signup against a
// not-yet-persisted user. On AttributionApplied the referee bonus and the
// referred-by code are written onto newUser and the matched referrer is
// returned; every other outcome leaves newUser untouched. Matching is
// case-insensitive and unmatched or malformed codes are absorbed, not
// surfaced as errors.
func (e *ReferralEngine) Attribute(ctx context.Context, newUser *domain.User, rawCode string) (domain.AttributionOutcome, *domain.User, error) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))
	if code == "" {
		return domain.AttributionNone, nil, nil
	}

	referrer, err := e.users.GetByReferralCode(ctx, code)
	if errors.Is(err, domain.ErrUserNotFound) {
		if !IsValidCode(code) {
			return domain.AttributionInvalidFormat, nil, nil
		}
		return domain.AttributionNotFound, nil, nil
	}
	if err != nil {
		return domain.AttributionNone, nil, err
	}

	if strings.EqualFold(referrer.Email, newUser.Email) {
		return domain.AttributionSelfReferral, nil, nil
	}

	newUser.Points += domain.RefereeBonusPoints
	newUser.ReferredBy = referrer.ReferralCode
	return domain.AttributionApplied, referrer, nil
}

// Record credits the referrer and writes the referral ledger entry. Called
// after the referee has been persisted.
func (e *ReferralEngine) Record(ctx context.Context, referrer, referee *domain.User) error {
	if err := e.users.AddPoints(ctx, referrer.ID, domain.ReferrerBonusPoints); err != nil {
		return err
	}
	return e.referrals.Create(ctx, &domain.Referral{
		ID:            uuid.New(),
		ReferrerID:    referrer.ID,
		RefereeID:     referee.ID,
		PointsAwarded: domain.ReferrerBonusPoints,
		CreatedAt:     time.Now(),
	})
}
