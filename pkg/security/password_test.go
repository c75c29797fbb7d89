package security_test

import (
	"strings"
	"testing"

	"github.com/angelmondragon/giftlist-backend/pkg/config"
	"github.com/angelmondragon/giftlist-backend/pkg/security"
)

var fastParams = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password", fastParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	a, err := security.HashPassword("same", fastParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	b, err := security.HashPassword("same", fastParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", fastParams); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, encoded := range []string{"not-a-hash", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA"} {
		if _, err := security.VerifyPassword("irrelevant", encoded); err == nil {
			t.Fatalf("expected error for malformed hash %q", encoded)
		}
	}
}

func TestVerifyPasswordRejectsOtherVersion(t *testing.T) {
	hash, err := security.HashPassword("pw", fastParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	old := strings.Replace(hash, "$v=19$", "$v=16$", 1)
	if _, err := security.VerifyPassword("pw", old); err != security.ErrIncompatibleVersion {
		t.Fatalf("expected ErrIncompatibleVersion, got %v", err)
	}
}

func TestPasswordLengthLimit(t *testing.T) {
	long := strings.Repeat("x", security.MaxPasswordBytes+1)
	if _, err := security.HashPassword(long, fastParams); err != security.ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}

	hash, err := security.HashPassword("short", fastParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	ok, err := security.VerifyPassword(long, hash)
	if err != nil || ok {
		t.Fatalf("expected plain mismatch for oversized input, got ok=%v err=%v", ok, err)
	}
}
