package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-for-jwt-signing-0123456789"

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 0)

	tok, err := issuer.Issue(Subject{ID: 7, Username: "alice"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tok.Token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if tok.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want 3600", tok.ExpiresIn)
	}

	sub, err := issuer.Verify(tok.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if sub.ID != 7 || sub.Username != "alice" {
		t.Errorf("Verify() = %+v, want {7 alice}", sub)
	}
}

func TestDefaultLifetimeIsOneHour(t *testing.T) {
	if DefaultTokenTTL != time.Hour {
		t.Fatalf("DefaultTokenTTL = %v, want 1h", DefaultTokenTTL)
	}

	for _, ttl := range []time.Duration{0, -time.Minute, DefaultTokenTTL} {
		issuer := NewTokenIssuer(testSecret, ttl)
		if issuer.TTL() != time.Hour {
			t.Errorf("NewTokenIssuer(%v).TTL() = %v, want 1h", ttl, issuer.TTL())
		}

		tok, err := issuer.Issue(Subject{ID: 1, Username: "bob"})
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if tok.ExpiresIn != 3600 {
			t.Errorf("ExpiresIn = %d, want 3600", tok.ExpiresIn)
		}

		var claims Claims
		if _, _, err := jwt.NewParser().ParseUnverified(tok.Token, &claims); err != nil {
			t.Fatalf("ParseUnverified() error = %v", err)
		}
		if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
			t.Errorf("exp - iat = %v, want 1h", got)
		}
	}
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	var claims [2]Claims
	for i := range claims {
		tok, err := issuer.Issue(Subject{ID: 1, Username: "bob"})
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, _, err := jwt.NewParser().ParseUnverified(tok.Token, &claims[i]); err != nil {
			t.Fatalf("ParseUnverified() error = %v", err)
		}
	}
	if claims[0].ID == "" || claims[0].ID == claims[1].ID {
		t.Errorf("token ids = %q, %q; want distinct non-empty", claims[0].ID, claims[1].ID)
	}
	if claims[0].Subject != "1" {
		t.Errorf("Subject = %q, want %q", claims[0].Subject, "1")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("correct-secret-correct-secret-correct", time.Hour).Issue(Subject{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = NewTokenIssuer("wrong-secret-wrong-secret-wrong-secret", time.Hour).Verify(tok.Token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	start := time.Now()
	issuer.now = func() time.Time { return start }

	tok, err := issuer.Issue(Subject{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	issuer.now = func() time.Time { return start.Add(59 * time.Minute) }
	if _, err := issuer.Verify(tok.Token); err != nil {
		t.Fatalf("Verify() before expiry error = %v", err)
	}

	issuer.now = func() time.Time { return start.Add(61 * time.Minute) }
	if _, err := issuer.Verify(tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() after expiry error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:   1,
		Username: "mallory",
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing HS512 token: %v", err)
	}

	issuer := NewTokenIssuer(testSecret, time.Hour)
	for name, raw := range map[string]string{"none": none, "HS512": hs512} {
		if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%s) error = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestVerify_MissingClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
	}{
		{"no expiry", Claims{UserID: 1, Username: "bob"}},
		{"no user id", Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			Username:         "bob",
		}},
		{"no username", Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           1,
		}},
	}

	issuer := NewTokenIssuer(testSecret, time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte(testSecret))
			if err != nil {
				t.Fatalf("signing: %v", err)
			}
			if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	for _, raw := range []string{"", "abc", "a.b.c"} {
		if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", raw, err)
		}
	}
}
