package identity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Auth error messages surfaced to clients
const (
	MsgMissingEmail        = "Missing email"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgBadRequest          = "Bad Request"
	MsgInvalidToken        = "Invalid Token"
	MsgTokenExpired        = "Token has expired"
	MsgMissingRefreshToken = "Missing refresh token"
	MsgInvalidRefreshToken = "Invalid or expired refresh token"
	MsgUnauthorized        = "Unauthorized"
)

// AuthService runs the passwordless login flow and session lifecycle
type AuthService struct {
	users     identity.UserRepository
	auths     identity.UserAuthRepository
	jobs      JobEnqueuer
	history   HistoryWriter
	throttle  LoginThrottle
	tokens    *auth.JWTService
	cfg       config.LoginConfig
	companyID uuid.UUID
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service.
// companyID is the tenant storefront sign-ups are created in.
func NewAuthService(
	users identity.UserRepository,
	auths identity.UserAuthRepository,
	jobs JobEnqueuer,
	history HistoryWriter,
	throttle LoginThrottle,
	tokens *auth.JWTService,
	cfg config.LoginConfig,
	companyID uuid.UUID,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		auths:     auths,
		jobs:      jobs,
		history:   history,
		throttle:  throttle,
		tokens:    tokens,
		cfg:       cfg,
		companyID: companyID,
		logger:    logger,
		now:       time.Now,
	}
}

// RequestLogin issues a one-time login token and queues the email carrying it
func (s *AuthService) RequestLogin(ctx context.Context, input RequestLoginInput) error {
	email := identity.NormalizeEmail(input.Email)
	if email == "" {
		return shared.NewValidationError(MsgMissingEmail)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("User")
		}
		return err
	}

	if user.HasPassword() && !auth.CheckPassword(user.PasswordHash, input.Password) {
		return shared.NewDomainError(shared.CodeUnauthorized, MsgInvalidCredentials)
	}

	allowed, err := s.throttle.Allow(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check login throttle: %w", err)
	}
	if !allowed {
		return shared.NewDomainError(shared.CodeTooManyRequests, throttleMessage(s.throttle.Window()))
	}

	j, err := s.queueLoginEmail(ctx, user.ID, email)
	if err != nil {
		if releaseErr := s.throttle.Release(context.WithoutCancel(ctx), email); releaseErr != nil {
			s.logger.Warn("Failed to release login throttle", zap.String("email", email), zap.Error(releaseErr))
		}
		return err
	}

	s.logger.Info("Login link requested", zap.String("user_id", user.ID.String()), zap.String("job_id", j.ID.String()))
	return nil
}

func (s *AuthService) queueLoginEmail(ctx context.Context, userID uuid.UUID, email string) (*job.Job, error) {
	ua, err := s.findOrNewAuth(ctx, userID)
	if err != nil {
		return nil, err
	}
	token := ua.IssueLoginToken(s.now(), s.cfg.TokenTTL)
	if err := s.auths.Save(ctx, ua); err != nil {
		return nil, fmt.Errorf("failed to store login token: %w", err)
	}

	j, err := job.NewLoginEmail(email, token)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Enqueue(ctx, j); err != nil {
		return nil, fmt.Errorf("failed to enqueue login email: %w", err)
	}
	return j, nil
}

// ValidateToken exchanges a login token for a signed session and refresh token
func (s *AuthService) ValidateToken(ctx context.Context, loginToken string) (*SessionTokens, error) {
	loginToken = strings.TrimSpace(loginToken)
	if len(loginToken) < identity.MinLoginTokenLength {
		return nil, shared.NewValidationError(MsgBadRequest)
	}

	ua, err := s.auths.FindByLoginToken(ctx, loginToken)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, MsgInvalidToken)
		}
		return nil, err
	}

	if ua.LoginTokenExpired(s.now()) {
		ua.ClearLoginToken()
		if err := s.auths.Save(ctx, ua); err != nil {
			return nil, fmt.Errorf("failed to clear expired token: %w", err)
		}
		return nil, shared.NewDomainError(shared.CodeUnauthorized, MsgTokenExpired)
	}

	user, err := s.users.FindByIDAnyCompany(ctx, ua.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, MsgInvalidToken)
		}
		return nil, err
	}

	sessionID, refreshID := ua.StartSession()
	if err := s.auths.Save(ctx, ua); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	session, err := s.tokens.SignSession(sessionID, string(user.Role), user.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	refresh, err := s.tokens.SignRefresh(refreshID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	s.recordHistory(ctx, user, audit.ActionLogin, fmt.Sprintf("User %s logged in successfully", user.ID))
	return &SessionTokens{Session: session, Refresh: refresh, User: user}, nil
}

// Refresh rotates the session id behind a valid refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.SignedToken, error) {
	if refreshToken == "" {
		return auth.SignedToken{}, shared.NewValidationError(MsgMissingRefreshToken)
	}
	invalid := shared.NewDomainError(shared.CodeForbidden, MsgInvalidRefreshToken)

	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return auth.SignedToken{}, invalid
	}

	ua, err := s.auths.FindByRefreshToken(ctx, claims.RefreshID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return auth.SignedToken{}, invalid
		}
		return auth.SignedToken{}, err
	}

	user, err := s.users.FindByIDAnyCompany(ctx, ua.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return auth.SignedToken{}, invalid
		}
		return auth.SignedToken{}, err
	}

	sessionID := ua.RotateSession()
	if err := s.auths.Save(ctx, ua); err != nil {
		return auth.SignedToken{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	session, err := s.tokens.SignSession(sessionID, string(user.Role), user.CompanyID)
	if err != nil {
		return auth.SignedToken{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return session, nil
}

// Logout clears every credential of user
func (s *AuthService) Logout(ctx context.Context, user *identity.User) error {
	ua, err := s.auths.FindByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if ua != nil {
		ua.EndSession()
		if err := s.auths.Save(ctx, ua); err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}
	}

	s.recordHistory(ctx, user, audit.ActionLogout, fmt.Sprintf("User %s logged out", user.FullName()))
	return nil
}

// Authenticate resolves a session token to its live user
func (s *AuthService) Authenticate(ctx context.Context, sessionToken string) (*identity.User, *auth.SessionClaims, error) {
	unauthorized := shared.NewDomainError(shared.CodeUnauthorized, MsgUnauthorized)
	if sessionToken == "" {
		return nil, nil, unauthorized
	}

	claims, err := s.tokens.ParseSession(sessionToken)
	if err != nil {
		return nil, nil, unauthorized
	}

	ua, err := s.auths.FindBySessionID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, unauthorized
		}
		return nil, nil, err
	}

	user, err := s.users.FindByIDAnyCompany(ctx, ua.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewNotFoundError("User")
		}
		return nil, nil, err
	}
	return user, claims, nil
}

// SignUp registers a storefront customer with a password
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*identity.User, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" ||
		strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" {
		return nil, shared.NewValidationError("Missing required fields")
	}

	user, err := identity.NewUser(s.companyID, input.Email, input.FirstName, input.LastName, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "User already exists")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		if auth.IsPasswordTooLong(err) {
			return nil, shared.NewValidationError("Password is too long")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.Username = strings.TrimSpace(input.Username)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) findOrNewAuth(ctx context.Context, userID uuid.UUID) (*identity.UserAuth, error) {
	ua, err := s.auths.FindByUserID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return identity.NewUserAuth(userID), nil
	}
	return ua, err
}

// recordHistory is best effort; a failed audit write never fails a login or logout
func (s *AuthService) recordHistory(ctx context.Context, user *identity.User, action audit.Action, description string) {
	entry := audit.NewUserHistory(user.CompanyID, user.ID, action, description, nil)
	if err := s.history.SaveHistory(ctx, entry); err != nil {
		s.logger.Warn("Failed to record user history",
			zap.String("user_id", user.ID.String()),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func throttleMessage(window time.Duration) string {
	minutes := int(math.Ceil(window.Minutes()))
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("Too many requests. Please try again in %d %s", minutes, unit)
}
