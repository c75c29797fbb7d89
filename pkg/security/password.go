package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/giftlist-backend/pkg/config"
	"golang.org/x/crypto/argon2"
)

const (
	hashScheme = "argon2id"

	// MaxPasswordBytes bounds the input fed to argon2 so a huge body cannot
	// pin a CPU during login or registration.
	MaxPasswordBytes = 1024
)

var (
	// ErrInvalidHash signals a stored hash that is not a PHC-formatted argon2id string.
	ErrInvalidHash = errors.New("invalid argon2id hash")
	// ErrIncompatibleVersion is returned for hashes produced by another argon2 revision.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	// ErrPasswordTooLong rejects passwords above MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password too long")
)

var b64 = base64.RawStdEncoding

// ArgonParams are the cost parameters recorded in every encoded hash.
type ArgonParams struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// ParamsFromConfig clamps the configured costs into a safe range.
func ParamsFromConfig(cfg config.PasswordConfig) ArgonParams {
	return ArgonParams{
		Memory:      uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		Time:        uint32(clamp(cfg.ArgonTime, 1, 10)),
		Parallelism: uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		SaltLen:     uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		KeyLen:      uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}
}

func (p ArgonParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
}

// encodedHash is a decoded "$argon2id$v=19$m=..,t=..,p=..$salt$key" string.
type encodedHash struct {
	params ArgonParams
	salt   []byte
	key    []byte
}

func (h encodedHash) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		hashScheme, argon2.Version,
		h.params.Memory, h.params.Time, h.params.Parallelism,
		b64.EncodeToString(h.salt), b64.EncodeToString(h.key))
}

func parseHash(encoded string) (encodedHash, error) {
	// leading "$" yields an empty first field
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != hashScheme {
		return encodedHash{}, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return encodedHash{}, ErrInvalidHash
	}
	if version != argon2.Version {
		return encodedHash{}, ErrIncompatibleVersion
	}

	var out encodedHash
	if n, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &out.params.Memory, &out.params.Time, &out.params.Parallelism); err != nil || n != 3 {
		return encodedHash{}, ErrInvalidHash
	}
	if out.params.Memory == 0 || out.params.Time == 0 || out.params.Parallelism == 0 {
		return encodedHash{}, ErrInvalidHash
	}

	var err error
	if out.salt, err = b64.DecodeString(fields[4]); err != nil || len(out.salt) == 0 {
		return encodedHash{}, ErrInvalidHash
	}
	if out.key, err = b64.DecodeString(fields[5]); err != nil || len(out.key) == 0 {
		return encodedHash{}, ErrInvalidHash
	}
	out.params.SaltLen = uint32(len(out.salt))
	out.params.KeyLen = uint32(len(out.key))
	return out, nil
}

// HashPassword derives an argon2id key with a fresh random salt and returns it
// in PHC string form.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	switch {
	case password == "":
		return "", errors.New("password cannot be empty")
	case len(password) > MaxPasswordBytes:
		return "", ErrPasswordTooLong
	}

	params := ParamsFromConfig(cfg)
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return encodedHash{params: params, salt: salt, key: params.derive(password, salt)}.String(), nil
}

// VerifyPassword reports whether password matches encoded. The comparison
// runs in constant time; a malformed hash is an error, a mismatch is not.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	if len(password) > MaxPasswordBytes {
		return false, nil
	}
	return subtle.ConstantTimeCompare(h.key, h.params.derive(password, h.salt)) == 1, nil
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}
