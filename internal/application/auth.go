package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pointpal/internal/domain"
	"pointpal/internal/infrastructure/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUseCase struct {
	users    UserRepository
	sessions SessionStore
	engine   *ReferralEngine
	hasher   *security.PasswordHasher
	tokens   *security.TokenManager
	log      *zap.SugaredLogger
	// delay reproduces the original client's simulated network latency
	// around login and signup. Zero disables it.
	delay time.Duration
}

func NewAuthUseCase(
	users UserRepository,
	sessions SessionStore,
	engine *ReferralEngine,
	hasher *security.PasswordHasher,
	tokens *security.TokenManager,
	log *zap.SugaredLogger,
	delay time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		sessions: sessions,
		engine:   engine,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
		delay:    delay,
	}
}

// Signup creates a user with a fresh referral code, attributes the optional
// referral code, and opens a session. Returns the persisted user, an access
// token, and the attribution outcome.
func (uc *AuthUseCase) Signup(ctx context.Context, email, name, password, referralCode string) (*domain.User, string, domain.AttributionOutcome, error) {
	if err := uc.simulateLatency(ctx); err != nil {
		return nil, "", domain.AttributionNone, err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.AttributionNone, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", domain.AttributionNone, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, "", domain.AttributionNone, err
	}

	code, err := uc.engine.UniqueCode(ctx, name)
	if err != nil {
		return nil, "", domain.AttributionNone, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		ReferralCode: code,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	outcome, referrer, err := uc.engine.Attribute(ctx, user, referralCode)
	if err != nil {
		return nil, "", domain.AttributionNone, err
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", domain.AttributionNone, err
	}

	if outcome == domain.AttributionApplied {
		if err := uc.engine.Record(ctx, referrer, user); err != nil {
			return nil, "", domain.AttributionNone, err
		}
	}

	token, err := uc.tokens.Generate(user.ID.String())
	if err != nil {
		return nil, "", domain.AttributionNone, err
	}

	if err := uc.sessions.Save(ctx, user); err != nil {
		return nil, "", domain.AttributionNone, err
	}

	uc.log.Infow("user signed up", "user_id", user.ID, "referral", outcome)
	return user, token, outcome, nil
}

// Login verifies the password hash and opens a session. Not-found and
// bad-password collapse into the same failure.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if err := uc.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.Generate(user.ID.String())
	if err != nil {
		return nil, "", err
	}

	if err := uc.sessions.Save(ctx, user); err != nil {
		return nil, "", err
	}

	uc.log.Infow("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout drops the session pointer only; the user record is untouched.
func (uc *AuthUseCase) Logout(ctx context.Context, userID uuid.UUID) error {
	return uc.sessions.Delete(ctx, userID)
}

// CurrentUser reads the session snapshot, falling back to the user store
// when the snapshot is absent or unreadable.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.sessions.Get(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}
	return uc.users.GetByID(ctx, userID)
}

func (uc *AuthUseCase) simulateLatency(ctx context.Context) error {
	if uc.delay <= 0 {
		return nil
	}
	t := time.NewTimer(uc.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
