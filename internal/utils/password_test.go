package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret-pass", 4) // minimum cost keeps the test fast
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if hash == "s3cret-pass" {
        t.Fatal("hash equals the plaintext")
    }
    if !VerifyPassword(hash, "s3cret-pass") {
        t.Fatal("correct password did not verify")
    }
    if VerifyPassword(hash, "wrong-pass") {
        t.Fatal("wrong password verified")
    }
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
    if VerifyPassword("not-a-bcrypt-hash", "anything") {
        t.Fatal("garbage hash verified")
    }
}
