package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwe"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/oklog/ulid/v2"

	"hospilog/internal/models/db_models"
	"hospilog/pkg/utils"
)

type TokenConfig struct {
	Secret        []byte
	EncryptionKey []byte
	Issuer        string
	Audience      string
	StepUpTTL     time.Duration
	SessionTTL    time.Duration
	ResetTTL      time.Duration
	Now           func() time.Time
}

// StepUpClaims carry a digest of the one-time code rather than the code itself;
// the token travels through the client and its payload is only base64.
type StepUpClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	OTPDigest string `json:"otp_digest"`
	TwoFA     bool   `json:"twofa"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type sessionEnvelope struct {
	EncryptedToken string `json:"encryptedToken"`
	jwt.RegisteredClaims
}

type ResetClaims struct {
	AccountID    string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"pwd"`
	jwt.RegisteredClaims
}

type SessionIdentity struct {
	AccountID uuid.UUID
	Email     string
	ExpiresAt time.Time
}

type TokenServiceInterface interface {
	IssueStepUpToken(account *db_models.Account, code string) (string, error)
	ParseStepUpToken(token string) (*StepUpClaims, error)
	MatchStepUpCode(claims *StepUpClaims, code string) bool
	IssueSessionToken(account *db_models.Account) (string, error)
	ParseSessionToken(token string) (*SessionIdentity, error)
	IssueResetToken(account *db_models.Account) (string, error)
	ParseResetToken(token string) (*ResetClaims, error)
	StepUpTTL() time.Duration
	SessionTTL() time.Duration
}

type TokenService struct {
	cfg    TokenConfig
	parser *jwt.Parser
}

func NewTokenService(cfg TokenConfig) (TokenServiceInterface, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token service: empty signing secret")
	}
	if len(cfg.EncryptionKey) != 32 {
		return nil, errors.New("token service: encryption key must be 32 bytes")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenService{
		cfg: cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(cfg.Now),
		),
	}, nil
}

func (t *TokenService) StepUpTTL() time.Duration  { return t.cfg.StepUpTTL }
func (t *TokenService) SessionTTL() time.Duration { return t.cfg.SessionTTL }

func (t *TokenService) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := t.cfg.Now()
	return jwt.RegisteredClaims{
		ID:        ulid.Make().String(),
		Subject:   subject,
		Issuer:    t.cfg.Issuer,
		Audience:  jwt.ClaimStrings{t.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (t *TokenService) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.Secret)
}

func (t *TokenService) keyFunc(*jwt.Token) (interface{}, error) {
	return t.cfg.Secret, nil
}

func (t *TokenService) otpDigest(jti, code string) string {
	mac := hmac.New(sha256.New, t.cfg.Secret)
	mac.Write([]byte(jti))
	mac.Write([]byte{0})
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// ---------- step-up ----------

func (t *TokenService) IssueStepUpToken(account *db_models.Account, code string) (string, error) {
	reg := t.registered(account.ID.String(), t.cfg.StepUpTTL)
	claims := &StepUpClaims{
		AccountID:        account.ID.String(),
		Email:            account.Email,
		OTPDigest:        t.otpDigest(reg.ID, code),
		TwoFA:            true,
		Role:             string(account.Role),
		RegisteredClaims: reg,
	}
	return t.sign(claims)
}

func (t *TokenService) ParseStepUpToken(token string) (*StepUpClaims, error) {
	claims := &StepUpClaims{}
	if _, err := t.parser.ParseWithClaims(token, claims, t.keyFunc); err != nil {
		return nil, utils.ErrInvalidOrExpiredToken
	}
	if claims.AccountID == "" || claims.Email == "" || claims.OTPDigest == "" || !claims.TwoFA || claims.ID == "" {
		return nil, utils.ErrMalformedToken
	}
	return claims, nil
}

func (t *TokenService) MatchStepUpCode(claims *StepUpClaims, code string) bool {
	want, err := hex.DecodeString(claims.OTPDigest)
	if err != nil {
		return false
	}
	got, _ := hex.DecodeString(t.otpDigest(claims.ID, code))
	return hmac.Equal(want, got)
}

// ---------- session ----------

func (t *TokenService) IssueSessionToken(account *db_models.Account) (string, error) {
	now := t.cfg.Now()
	inner, err := jwxjwt.NewBuilder().
		Subject(account.ID.String()).
		Issuer(t.cfg.Issuer).
		Audience([]string{t.cfg.Audience}).
		IssuedAt(now).
		Expiration(now.Add(t.cfg.SessionTTL)).
		Claim("email", account.Email).
		Build()
	if err != nil {
		return "", fmt.Errorf("build session payload: %w", err)
	}

	payload, err := json.Marshal(inner)
	if err != nil {
		return "", fmt.Errorf("encode session payload: %w", err)
	}
	encrypted, err := jwe.Encrypt(payload,
		jwe.WithKey(jwa.A256KW, t.cfg.EncryptionKey),
		jwe.WithContentEncryption(jwa.A256GCM),
	)
	if err != nil {
		return "", fmt.Errorf("encrypt session payload: %w", err)
	}

	return t.sign(&sessionEnvelope{
		EncryptedToken:   string(encrypted),
		RegisteredClaims: t.registered(account.ID.String(), t.cfg.SessionTTL),
	})
}

func (t *TokenService) ParseSessionToken(token string) (*SessionIdentity, error) {
	envelope := &sessionEnvelope{}
	if _, err := t.parser.ParseWithClaims(token, envelope, t.keyFunc); err != nil {
		return nil, utils.ErrUnauthorized
	}
	if envelope.EncryptedToken == "" {
		return nil, utils.ErrUnauthorized
	}

	payload, err := jwe.Decrypt([]byte(envelope.EncryptedToken), jwe.WithKey(jwa.A256KW, t.cfg.EncryptionKey))
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	inner := jwxjwt.New()
	if err := json.Unmarshal(payload, inner); err != nil {
		return nil, utils.ErrUnauthorized
	}
	err = jwxjwt.Validate(inner,
		jwxjwt.WithClock(jwxjwt.ClockFunc(t.cfg.Now)),
		jwxjwt.WithIssuer(t.cfg.Issuer),
		jwxjwt.WithAudience(t.cfg.Audience),
	)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	id, err := uuid.Parse(inner.Subject())
	if err != nil || id.String() != envelope.Subject {
		return nil, utils.ErrUnauthorized
	}
	email, _ := inner.Get("email")
	emailStr, _ := email.(string)
	if emailStr == "" {
		return nil, utils.ErrUnauthorized
	}

	return &SessionIdentity{AccountID: id, Email: emailStr, ExpiresAt: inner.Expiration()}, nil
}

// ---------- password reset ----------

func (t *TokenService) IssueResetToken(account *db_models.Account) (string, error) {
	return t.sign(&ResetClaims{
		AccountID:        account.ID.String(),
		Email:            account.Email,
		PasswordHash:     account.PasswordHash,
		RegisteredClaims: t.registered(account.ID.String(), t.cfg.ResetTTL),
	})
}

func (t *TokenService) ParseResetToken(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if _, err := t.parser.ParseWithClaims(token, claims, t.keyFunc); err != nil {
		return nil, utils.ErrInvalidOrExpiredToken
	}
	if claims.Email == "" || claims.PasswordHash == "" {
		return nil, utils.ErrMalformedToken
	}
	return claims, nil
}
