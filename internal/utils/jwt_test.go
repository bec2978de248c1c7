package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "ORGANIZER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if at.Token == "" {
        t.Fatal("empty token string")
    }
    if !at.Exp.After(time.Now().UTC()) {
        t.Fatalf("expiry %v is not in the future", at.Exp)
    }

    parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    claims, ok := parsed.Claims.(jwt.MapClaims)
    if !ok || !parsed.Valid {
        t.Fatal("token did not validate")
    }
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Fatalf("sub claim = %v, want 42", claims["sub"])
    }
    if role, _ := claims["role"].(string); role != "ORGANIZER" {
        t.Fatalf("role claim = %v, want ORGANIZER", claims["role"])
    }
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "ADMIN", 5)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    _, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    if err == nil {
        t.Fatal("token parsed with the wrong secret")
    }
}

func TestNewRefreshToken(t *testing.T) {
    rt, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw token length = %d, want 96", len(rt.Raw))
    }
    if !rt.Exp.After(time.Now().UTC().Add(6 * 24 * time.Hour)) {
        t.Fatalf("expiry %v is sooner than expected", rt.Exp)
    }

    other, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if rt.Raw == other.Raw {
        t.Fatal("two refresh tokens came out identical")
    }
}

func TestHashRefreshRaw(t *testing.T) {
    a := HashRefreshRaw("some-token")
    b := HashRefreshRaw("some-token")
    c := HashRefreshRaw("other-token")
    if a != b {
        t.Fatal("hash is not deterministic")
    }
    if a == c {
        t.Fatal("different inputs hashed equal")
    }
    if len(a) != 64 {
        t.Fatalf("hash length = %d, want 64", len(a))
    }
}
