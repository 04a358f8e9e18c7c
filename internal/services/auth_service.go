package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"farmbook/internal/config"
	apperrors "farmbook/internal/errors"
	"farmbook/internal/logger"
	"farmbook/internal/models"
	"farmbook/internal/uuid"
)

const tokenIssuer = "farmbook"

// TokenClaims is the full claim set carried by an issued token.
type TokenClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token's scope claim carries ROLE_<code>.
func (c *TokenClaims) HasScope(roleCode string) bool {
	for _, entry := range strings.Fields(c.Scope) {
		if entry == "ROLE_"+roleCode {
			return true
		}
	}
	return false
}

// authService implements the authentication token lifecycle: credential
// checks, token issuance, verification, refresh, and the denylist.
type authService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, cfg *config.Config) AuthServicer {
	return &authService{db: db, cfg: cfg}
}

// Authenticate validates credentials and issues a signed session token.
// The identifier is accepted as either username or email. Unknown identifier
// and wrong password both map to INVALID_CREDENTIALS so callers cannot
// enumerate users.
func (s *authService) Authenticate(identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperrors.ErrIdentifierRequired
	}

	user, err := s.findByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrUserLocked
	}

	if len(user.Roles) == 0 {
		return nil, apperrors.ErrRoleMissing
	}

	primary := models.PrimaryRole(user.Roles)
	token, err := s.generateToken(user, primary)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("user authenticated", "user_id", user.ID, "role", primary)
	return s.buildSession(user, primary, token), nil
}

// VerifyToken checks the token signature, the mode-dependent expiry, and the
// denylist. With isRefresh the token is accepted up to issued-at plus the
// refreshable duration instead of its own expiration claim. Side-effect free.
func (s *authService) VerifyToken(token string, isRefresh bool) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return nil, apperrors.ErrUnauthenticated
	}

	var expiry time.Time
	if isRefresh {
		if claims.IssuedAt == nil {
			return nil, apperrors.ErrUnauthenticated
		}
		expiry = claims.IssuedAt.Time.Add(s.cfg.JWTRefreshableDuration)
	} else {
		if claims.ExpiresAt == nil {
			return nil, apperrors.ErrUnauthenticated
		}
		expiry = claims.ExpiresAt.Time
	}
	if !expiry.After(time.Now()) {
		return nil, apperrors.ErrUnauthenticated
	}

	var count int64
	if err := s.db.Model(&models.InvalidatedToken{}).Where("id = ?", claims.ID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	return claims, nil
}

// Introspect reports whether a token would pass normal verification.
// It never raises; any failure is reported as invalid.
func (s *authService) Introspect(token string) bool {
	_, err := s.VerifyToken(token, false)
	return err == nil
}

// Logout denylists the token's id. An already invalid or expired token is a
// silent no-op, so repeated logouts never fail.
func (s *authService) Logout(token string) error {
	claims, err := s.VerifyToken(token, true)
	if err != nil {
		logger.Get().Debugw("logout on expired or invalid token, ignoring")
		return nil
	}

	if err := s.denylist(claims); err != nil {
		return err
	}
	s.purgeExpired()

	logger.Get().Infow("token invalidated", "jti", claims.ID)
	return nil
}

// Refresh verifies the token in refresh mode, invalidates it, and issues a
// fresh session. The old token can never be refreshed twice.
func (s *authService) Refresh(token string) (*Session, error) {
	claims, err := s.VerifyToken(token, true)
	if err != nil {
		return nil, err
	}

	if err := s.denylist(claims); err != nil {
		return nil, err
	}

	identifier := claims.Email
	if identifier == "" {
		identifier = claims.Subject
	}

	user, err := s.findByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	primary := models.PrimaryRole(user.Roles)
	fresh, err := s.generateToken(user, primary)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("token refreshed", "user_id", user.ID)
	return s.buildSession(user, primary, fresh), nil
}

// Me returns the session payload for an already authenticated user, without
// issuing a new token.
func (s *authService) Me(userID uint) (*Session, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	session := s.buildSession(&user, models.PrimaryRole(user.Roles), "")
	return session, nil
}

// findByIdentifier loads a user with roles by username or email.
func (s *authService) findByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) generateToken(user *models.User, primaryRole string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     primaryRole,
		Scope:    buildScope(user.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userSubject(user.ID),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTValidDuration)),
			ID:        uuid.New(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// denylist records the token id with its natural expiry. Inserting an id that
// is already denylisted is treated as success.
func (s *authService) denylist(claims *TokenClaims) error {
	entry := &models.InvalidatedToken{ID: claims.ID}
	if claims.ExpiresAt != nil {
		entry.ExpiryTime = claims.ExpiresAt.Time
	} else if claims.IssuedAt != nil {
		entry.ExpiryTime = claims.IssuedAt.Time.Add(s.cfg.JWTRefreshableDuration)
	}

	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// purgeExpired drops denylist rows whose expiry has passed. An expired token
// already fails verification on its own, so stale rows are only growth.
func (s *authService) purgeExpired() {
	if err := s.db.Where("expiry_time < ?", time.Now()).Delete(&models.InvalidatedToken{}).Error; err != nil {
		logger.Get().Warnw("denylist purge failed", "error", err.Error())
	}
}

func (s *authService) buildSession(user *models.User, primaryRole, token string) *Session {
	codes := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		codes = append(codes, role.Code)
	}

	session := &Session{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Roles:    codes,
		Role:     primaryRole,
		Profile: Profile{
			ID:         user.ID,
			FullName:   user.FullName,
			Phone:      user.Phone,
			ProvinceID: user.ProvinceID,
			WardID:     user.WardID,
		},
		RedirectTo: models.RedirectPath(primaryRole),
	}
	if token != "" {
		session.Token = token
		session.TokenType = "Bearer"
		session.ExpiresIn = int64(s.cfg.JWTValidDuration.Seconds())
	}
	return session
}

func userSubject(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func buildScope(roles []models.Role) string {
	entries := make([]string, 0, len(roles))
	for _, role := range roles {
		entries = append(entries, "ROLE_"+role.Code)
	}
	return strings.Join(entries, " ")
}
