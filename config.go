package shopflow

import (
	"errors"
	"time"

	"github.com/MrEthical07/shopflow/jwt"
	"github.com/MrEthical07/shopflow/password"
)

/* ==== TOKENS ==== */

// JWTConfig controls the access tokens issued after login.
type JWTConfig struct {
	// Method is "hs256" or "ed25519".
	Method string
	// Secret is the shared key for hs256.
	Secret []byte
	// PrivateKey / PublicKey hold the ed25519 pair, raw or PEM.
	PrivateKey []byte
	PublicKey  []byte
	Issuer     string
	TTL        time.Duration
	Leeway     time.Duration
}

/* ==== PASSWORDS ==== */

// PasswordConfig controls argon2id hashing costs.
type PasswordConfig struct {
	MemoryKB    uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/* ==== STORAGE ==== */

// StoreConfig controls the Redis repositories.
type StoreConfig struct {
	// KeyPrefix namespaces every key this module writes.
	KeyPrefix string
}

// Config assembles all engine settings. Start from defaults via New and
// override what you need with Builder.WithConfig.
type Config struct {
	JWT      JWTConfig
	Password PasswordConfig
	Store    StoreConfig
}

func defaultConfig() *Config {
	pw := password.DefaultConfig()
	return &Config{
		JWT: JWTConfig{
			Method: string(jwt.MethodHS256),
			Issuer: "shopflow",
			TTL:    15 * time.Minute,
			Leeway: 30 * time.Second,
		},
		Password: PasswordConfig{
			MemoryKB:    pw.MemoryKB,
			Time:        pw.Time,
			Parallelism: pw.Parallelism,
			SaltLength:  pw.SaltLength,
			KeyLength:   pw.KeyLength,
		},
		Store: StoreConfig{
			KeyPrefix: "shopflow",
		},
	}
}

func cloneConfig(cfg *Config) *Config {
	out := *cfg
	out.JWT.Secret = append([]byte(nil), cfg.JWT.Secret...)
	out.JWT.PrivateKey = append([]byte(nil), cfg.JWT.PrivateKey...)
	out.JWT.PublicKey = append([]byte(nil), cfg.JWT.PublicKey...)
	return &out
}

// Validate checks the surface-level settings. Key material and cost
// parameters get their deep checks in the jwt and password constructors
// during Build.
func (c *Config) Validate() error {
	if c.JWT.TTL <= 0 {
		return errors.New("config: JWT TTL must be positive")
	}
	switch c.JWT.Method {
	case string(jwt.MethodHS256), string(jwt.MethodEd25519):
	default:
		return errors.New("config: JWT method must be hs256 or ed25519")
	}
	if c.Password.MemoryKB == 0 || c.Password.Time == 0 || c.Password.Parallelism == 0 {
		return errors.New("config: password costs must be set")
	}
	if c.Store.KeyPrefix == "" {
		return errors.New("config: store key prefix must not be empty")
	}
	return nil
}
