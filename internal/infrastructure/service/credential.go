// Package service provides infrastructure implementations of the identity
// contracts: the pluggable credential verifiers.
package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
)

// PlainVerifier compares credentials in plain form, matching the original
// intake system's behavior.
type PlainVerifier struct{}

// NewPlainVerifier returns the plain-form verifier.
func NewPlainVerifier() PlainVerifier {
	return PlainVerifier{}
}

// Verify implements identity.CredentialVerifier.
func (PlainVerifier) Verify(user identity.User, raw string) bool {
	if user == nil {
		return false
	}
	stored := user.Credential()
	return subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) == 1
}

// Change implements identity.CredentialVerifier.
func (v PlainVerifier) Change(user identity.User, oldRaw, newRaw string) bool {
	if !v.Verify(user, oldRaw) || newRaw == "" {
		return false
	}
	user.SetCredential(newRaw)
	return true
}

// BcryptVerifier stores credentials as bcrypt hashes. Drop-in replacement
// for PlainVerifier behind the same contract.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier returns a bcrypt verifier with the default cost.
func NewBcryptVerifier() BcryptVerifier {
	return BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Hash produces the stored form of a raw credential, for loaders that seed
// hashed credentials.
func (v BcryptVerifier) Hash(raw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(raw), v.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify implements identity.CredentialVerifier.
func (BcryptVerifier) Verify(user identity.User, raw string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Credential()), []byte(raw)) == nil
}

// Change implements identity.CredentialVerifier.
func (v BcryptVerifier) Change(user identity.User, oldRaw, newRaw string) bool {
	if !v.Verify(user, oldRaw) || newRaw == "" {
		return false
	}
	hashed, err := v.Hash(newRaw)
	if err != nil {
		return false
	}
	user.SetCredential(hashed)
	return true
}
