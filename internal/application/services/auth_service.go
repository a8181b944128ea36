package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/infrastructure/mailer"
	"github.com/journalkeep/core/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and the password-reset workflow
type AuthService struct {
	userRepo    ports.UserRepository
	tokenRepo   ports.ResetTokenRepository
	mailer      mailer.Mailer
	jwtConfig   config.JWTConfig
	resetConfig config.ResetConfig
	production  bool
	logger      *logger.Logger
}

// NewAuthService creates a new auth service. A nil mailer means no mail
// transport is configured.
func NewAuthService(userRepo ports.UserRepository, tokenRepo ports.ResetTokenRepository, m mailer.Mailer, cfg *config.Config, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		mailer:      m,
		jwtConfig:   cfg.JWT,
		resetConfig: cfg.Reset,
		production:  cfg.App.IsProduction(),
		logger:      logger,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	role := entities.UserRole(req.Role)
	if req.Role == "" {
		role = entities.UserRoleClient
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", entities.ErrInvalidRequest, req.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Role:       role,
		AccessList: []string{},
		Extra:      entities.Record{},
	}

	createdUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User registered successfully", "user_id", createdUser.ID, "email", createdUser.Email)

	accessToken, err := s.generateAccessToken(createdUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:        createdUser.Sanitized(),
	}, nil
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warnw("Login attempt with non-existent email", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Warnw("Login attempt with invalid password", "email", req.Email, "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Infow("User logged in successfully", "user_id", user.ID, "email", user.Email)

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:        user.Sanitized(),
	}, nil
}

// ForgotPassword issues a reset token and delivers the reset link. Without
// a mail transport, and only outside production, the link is returned in
// the response payload instead.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ports.ForgotPasswordResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenRepo.Issue(ctx, user.ID, s.resetConfig.TokenTTL)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s?token=%s", s.resetConfig.BaseURL, token.Token)

	if s.mailer != nil {
		msg := mailer.Message{
			To:      user.Email,
			Subject: "Reset your JournalKeep password",
			Text:    fmt.Sprintf("Hi %s,\n\nFollow this link to reset your password:\n\n%s\n\nThe link expires in %s. If you did not request a reset you can ignore this mail.\n", user.Name, link, s.resetConfig.TokenTTL),
			HTML:    fmt.Sprintf("<p>Hi %s,</p><p><a href=%q>Reset your password</a></p><p>The link expires in %s. If you did not request a reset you can ignore this mail.</p>", user.Name, link, s.resetConfig.TokenTTL),
		}
		if err := s.mailer.Send(msg); err != nil {
			return nil, err
		}

		s.logger.Infow("Password reset mail sent", "user_id", user.ID)
		return &ports.ForgotPasswordResponse{Message: "reset link sent"}, nil
	}

	if s.production {
		return nil, fmt.Errorf("no mail transport configured")
	}

	// Development convenience only: hand the link back to the caller.
	s.logger.Warnw("No mail transport configured, returning reset link in response", "user_id", user.ID)
	return &ports.ForgotPasswordResponse{
		Message:   "no mail transport configured, use the returned link",
		ResetLink: link,
	}, nil
}

// ResetPassword consumes a reset token and overwrites the user's password
func (s *AuthService) ResetPassword(ctx context.Context, req ports.ResetPasswordRequest) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.tokenRepo.Consume(ctx, req.Token, string(hashedPassword))
	if err != nil {
		return err
	}

	s.logger.Infow("Password reset successfully", "user_id", user.ID)
	return nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *AuthService) generateAccessToken(user *entities.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
