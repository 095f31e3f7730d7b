package jwt

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the token signature algorithm.
type SigningMethod string

const (
	// MethodHS256 signs with an HMAC-SHA256 shared secret.
	MethodHS256 SigningMethod = "hs256"
	// MethodEd25519 signs with an Ed25519 key pair.
	MethodEd25519 SigningMethod = "ed25519"
)

// Config holds the token parameters. Secret is required for hs256;
// PrivateKey/PublicKey (raw or PEM) for ed25519.
type Config struct {
	Method     SigningMethod
	Secret     []byte
	PrivateKey []byte
	PublicKey  []byte
	Issuer     string
	TTL        time.Duration
	Leeway     time.Duration
}

// Provider issues and parses subject tokens. Safe for concurrent use. The
// clock is injectable so tests can pin iat/exp.
type Provider struct {
	cfg Config
	now func() time.Time
}

// NewProvider validates cfg and returns a ready Provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("token leeway out of range")
	}
	switch cfg.Method {
	case MethodHS256:
		if len(cfg.Secret) < 32 {
			return nil, errors.New("hs256 secret must be at least 32 bytes")
		}
	case MethodEd25519:
		if _, err := edPrivateKey(cfg.PrivateKey); err != nil {
			return nil, err
		}
		if _, err := edPublicKey(cfg.PublicKey); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported signing method %q", cfg.Method)
	}
	return &Provider{cfg: cfg, now: time.Now}, nil
}

// WithNow replaces the provider's clock. Test hook.
func (p *Provider) WithNow(now func() time.Time) *Provider {
	p.now = now
	return p
}

// Generate issues a signed token whose subject is the authenticated
// principal's identifier. Exactly one token per call; nothing is cached.
func (p *Provider) Generate(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}
	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    p.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.cfg.TTL)),
	}
	token := jwt.NewWithClaims(p.method(), claims)
	key, err := p.signKey()
	if err != nil {
		return "", err
	}
	return token.SignedString(key)
}

// Parse verifies signature, issuer, and time window and returns the subject.
func (p *Provider) Parse(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{p.method().Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(p.now),
	}
	if p.cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(p.cfg.Leeway))
	}
	if p.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)
	token, err := parser.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return p.verifyKey()
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

func (p *Provider) method() jwt.SigningMethod {
	if p.cfg.Method == MethodHS256 {
		return jwt.SigningMethodHS256
	}
	return jwt.SigningMethodEdDSA
}

func (p *Provider) signKey() (any, error) {
	if p.cfg.Method == MethodHS256 {
		return p.cfg.Secret, nil
	}
	return edPrivateKey(p.cfg.PrivateKey)
}

func (p *Provider) verifyKey() (any, error) {
	if p.cfg.Method == MethodHS256 {
		return p.cfg.Secret, nil
	}
	return edPublicKey(p.cfg.PublicKey)
}

func edPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}

func edPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}
