package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algorithmID = "argon2id"

	minMemoryKB    uint32 = 8 * 1024
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	minRawPassword        = 8
)

// Config holds the argon2id cost parameters. Zero fields are rejected by
// NewHasher; use DefaultConfig as a starting point.
type Config struct {
	MemoryKB    uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig returns interactive-login cost parameters.
func DefaultConfig() Config {
	return Config{
		MemoryKB:    64 * 1024,
		Time:        2,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ErrPasswordTooShort reports a raw password below the minimum length.
// Callers use it to tell a rejected input from a hashing malfunction.
var ErrPasswordTooShort = fmt.Errorf("password must be at least %d bytes", minRawPassword)

// Hasher hashes and verifies passwords. Safe for concurrent use.
type Hasher struct {
	cfg Config
}

// NewHasher validates cfg and returns a ready Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	switch {
	case cfg.MemoryKB < minMemoryKB:
		return nil, fmt.Errorf("password memory must be >= %d KB", minMemoryKB)
	case cfg.Time < 1:
		return nil, errors.New("password time cost must be >= 1")
	case cfg.Parallelism < 1:
		return nil, errors.New("password parallelism must be >= 1")
	case cfg.SaltLength < minSaltLength:
		return nil, fmt.Errorf("password salt length must be >= %d", minSaltLength)
	case cfg.KeyLength < minKeyLength:
		return nil, fmt.Errorf("password key length must be >= %d", minKeyLength)
	}
	return &Hasher{cfg: cfg}, nil
}

// Hash derives an argon2id key from raw and returns it as a PHC string:
// $argon2id$v=19$m=...,t=...,p=...$salt$key. Raw bytes are used exactly as
// provided, with no Unicode normalization.
func (h *Hasher) Hash(raw string) (string, error) {
	if len(raw) < minRawPassword {
		return "", ErrPasswordTooShort
	}
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(raw), salt, h.cfg.Time, h.cfg.MemoryKB, h.cfg.Parallelism, h.cfg.KeyLength)
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID, argon2.Version,
		h.cfg.MemoryKB, h.cfg.Time, h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Matches re-derives the key with the parameters embedded in encoded and
// compares in constant time. A malformed encoded hash is an error, not a
// mismatch, so callers can tell corruption from a wrong password.
func (h *Hasher) Matches(raw, encoded string) (bool, error) {
	p, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(raw), p.salt, p.time, p.memoryKB, p.parallelism, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(key, p.key) == 1, nil
}

// LooksHashed reports whether encoded parses as a PHC argon2id string.
// Domain constructors use it to refuse storing raw passwords as hashes.
func LooksHashed(encoded string) bool {
	_, err := parsePHC(encoded)
	return err == nil
}

type phc struct {
	memoryKB    uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func parsePHC(encoded string) (*phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("invalid PHC format")
	}
	if parts[1] != algorithmID {
		return nil, errors.New("unsupported algorithm")
	}
	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if !strings.HasPrefix(parts[2], "v=") || err != nil || version != argon2.Version {
		return nil, errors.New("unsupported argon2 version")
	}
	var p phc
	for _, pair := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.New("invalid parameter entry")
		}
		switch k {
		case "m":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil || n < uint64(minMemoryKB) {
				return nil, errors.New("invalid memory parameter")
			}
			p.memoryKB = uint32(n)
		case "t":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil || n < 1 {
				return nil, errors.New("invalid time parameter")
			}
			p.time = uint32(n)
		case "p":
			n, err := strconv.ParseUint(v, 10, 8)
			if err != nil || n < 1 {
				return nil, errors.New("invalid parallelism parameter")
			}
			p.parallelism = uint8(n)
		default:
			return nil, errors.New("unsupported parameter")
		}
	}
	if p.memoryKB == 0 || p.time == 0 || p.parallelism == 0 {
		return nil, errors.New("missing parameters")
	}
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) < int(minSaltLength) {
		return nil, errors.New("invalid salt")
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.key) < int(minKeyLength) {
		return nil, errors.New("invalid key")
	}
	return &p, nil
}
