package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	claims := Claims{AccountID: "acct-1", EmployeeID: "OIJODO20241234", Role: RoleHR, SessionID: "sess-1"}
	token, err := GenerateToken("secret", claims, time.Now(), time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.AccountID != "acct-1" || parsed.Role != RoleHR || parsed.SessionID != "sess-1" {
		t.Fatalf("unexpected claims %+v", parsed)
	}

	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := Claims{AccountID: "acct-1", Role: RoleEmployee, SessionID: "sess-1"}
	token, err := GenerateToken("secret", claims, time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{AccountID: "acct-1", Role: RoleEmployee, SessionID: "sess-1"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken("secret", signed); err == nil {
		t.Fatal("expected HS512 token to be rejected")
	}
}

func TestParseTokenRequiresSession(t *testing.T) {
	token, err := GenerateToken("secret", Claims{AccountID: "acct-1", Role: RoleEmployee}, time.Now(), time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected token without session to be rejected")
	}
}
