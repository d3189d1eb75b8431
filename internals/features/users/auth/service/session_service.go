// internals/features/users/auth/service/session_service.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	authModel "campus_events_backend/internals/features/users/auth/model"
	authRepo "campus_events_backend/internals/features/users/auth/repository"
	userModel "campus_events_backend/internals/features/users/user/model"
	helperAuth "campus_events_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CookieName        = "campus_hub.sid"
	DefaultSessionTTL = 24 * time.Hour
)

var (
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password.")
	ErrAuthRequired       = fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please log in.")
	ErrAccountDisabled    = fiber.NewError(fiber.StatusForbidden, "This account has been disabled.")
)

// ClientMeta is stored alongside the session for auditing.
type ClientMeta struct {
	UserAgent string
	IP        string
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

type SessionService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewSessionService(db *gorm.DB, secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		DB:     db,
		Secret: []byte(secret),
		TTL:    ttl,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// dummyHash keeps the unknown-email path as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("campus-hub-timing-guard"), bcrypt.MinCost)

// ========================== LOGIN ==========================
// Login verifies credentials, destroys previousToken's session and issues a fresh one.
func (s *SessionService) Login(ctx context.Context, email, password, previousToken string, meta ClientMeta) (helperAuth.Session, string, error) {
	email = userModel.NormalizeEmail(email)
	if email == "" || password == "" {
		return helperAuth.Session{}, "", ErrInvalidCredentials
	}

	user, err := authRepo.FindUserByEmail(s.DB.WithContext(ctx), email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helperAuth.Session{}, "", fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return helperAuth.Session{}, "", ErrInvalidCredentials
	}
	if !CheckPassword(user.Password, password) {
		return helperAuth.Session{}, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return helperAuth.Session{}, "", ErrAccountDisabled
	}

	return s.Regenerate(ctx, user, previousToken, meta)
}

// Regenerate drops the previous session (if any) and issues a new one for user.
func (s *SessionService) Regenerate(ctx context.Context, user *userModel.UserModel, previousToken string, meta ClientMeta) (helperAuth.Session, string, error) {
	if previousToken != "" {
		if err := s.Logout(ctx, previousToken); err != nil {
			log.Printf("[WARN] drop previous session failed: %v", err)
		}
	}
	return s.Issue(ctx, user, meta)
}

// Issue creates a session row and returns the signed cookie value.
func (s *SessionService) Issue(ctx context.Context, user *userModel.UserModel, meta ClientMeta) (helperAuth.Session, string, error) {
	sid, err := randomID()
	if err != nil {
		return helperAuth.Session{}, "", err
	}
	now := s.Now()

	sess := helperAuth.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ExpiresAt: now.Add(s.TTL),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return helperAuth.Session{}, "", err
	}

	row := authModel.SessionModel{
		UserID:    user.ID,
		TokenHash: s.hash(sid),
		Data:      datatypes.JSON(data),
		ExpiresAt: sess.ExpiresAt,
		UserAgent: strptr(meta.UserAgent),
		IP:        strptr(meta.IP),
	}
	if err := authRepo.CreateSession(s.DB.WithContext(ctx), &row); err != nil {
		return helperAuth.Session{}, "", fmt.Errorf("create session: %w", err)
	}
	sess.ID = row.ID

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}).SignedString(s.Secret)
	if err != nil {
		return helperAuth.Session{}, "", fmt.Errorf("sign session: %w", err)
	}
	return sess, token, nil
}

// ========================== RESOLVE ==========================
// Resolve maps a cookie value to its live session or ErrAuthRequired.
func (s *SessionService) Resolve(ctx context.Context, token string) (helperAuth.Session, error) {
	sid, ok := s.parse(token, true)
	if !ok {
		return helperAuth.Session{}, ErrAuthRequired
	}

	row, err := authRepo.FindLiveSession(s.DB.WithContext(ctx), s.hash(sid), s.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helperAuth.Session{}, ErrAuthRequired
		}
		return helperAuth.Session{}, fmt.Errorf("find session: %w", err)
	}

	var sess helperAuth.Session
	if err := json.Unmarshal(row.Data, &sess); err != nil {
		return helperAuth.Session{}, fmt.Errorf("decode session: %w", err)
	}
	sess.ID = row.ID
	sess.UserID = row.UserID
	sess.ExpiresAt = row.ExpiresAt
	return sess, nil
}

// ========================== LOGOUT ==========================
// Logout is idempotent: unknown, expired or malformed tokens are not errors.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	sid, ok := s.parse(token, false)
	if !ok {
		return nil
	}
	_, err := authRepo.DeleteSessionByHash(s.DB.WithContext(ctx), s.hash(sid))
	return err
}

// RefreshUser rewrites the cached identity in every session of user.
func (s *SessionService) RefreshUser(ctx context.Context, user *userModel.UserModel) error {
	data, err := json.Marshal(helperAuth.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		return err
	}
	return authRepo.UpdateSessionData(s.DB.WithContext(ctx), user.ID, datatypes.JSON(data))
}

/* ========================== helpers ========================== */

func (s *SessionService) parse(token string, validateExpiry bool) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	var opts []jwt.ParserOption
	if !validateExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, opts...)
	if err != nil || !tok.Valid || claims.SID == "" {
		return "", false
	}
	return claims.SID, true
}

// hash: HMAC-SHA256(secret, sid) as hex.
func (s *SessionService) hash(sid string) string {
	m := hmac.New(sha256.New, s.Secret)
	m.Write([]byte(sid))
	return hex.EncodeToString(m.Sum(nil))
}

func randomID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
