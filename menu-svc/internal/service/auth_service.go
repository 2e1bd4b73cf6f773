package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

type AuthService struct {
	passwordHash []byte
	tokens       TokenIssuer
}

func NewAuthService(passwordHash string, tokens TokenIssuer) *AuthService {
	return &AuthService{passwordHash: []byte(passwordHash), tokens: tokens}
}

func (s *AuthService) Login(password string) (string, time.Time, error) {
	if password == "" || len(s.passwordHash) == 0 {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.tokens.Issue(adminSubject)
}
