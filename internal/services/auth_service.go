package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

// Параметры argon2id. Менять только вместе с миграцией перехеширования.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

type AuthService interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(digest, plain string) bool
	Login(phone, password string) (*models.User, error)
	PhoneTaken(phone string) (bool, error)
	PhoneTakenForRole(phone, role string) (bool, error)
}

type authService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) HashPassword(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", apperrors.E(apperrors.Validation, "password is required")
	}
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword accepts argon2id digests and legacy bcrypt digests.
// Любой непонятный формат — просто false, без ошибки.
func (s *authService) VerifyPassword(digest, plain string) bool {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return verifyArgon2id(digest, plain)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
	default:
		return false
	}
}

func verifyArgon2id(digest, plain string) bool {
	parts := strings.Split(digest, "$")
	// ["", "argon2id", "v=19", "m=...,t=...,p=...", salt, hash]
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var mem, iter uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(plain), salt, iter, mem, par, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Login authenticates by phone + password. The failure message never says
// which of the two was wrong.
func (s *authService) Login(phone, password string) (*models.User, error) {
	user, err := s.users.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.E(apperrors.Unauthorized, "incorrect phone number or password")
	}
	return user, nil
}

func (s *authService) PhoneTaken(phone string) (bool, error) {
	user, err := s.users.GetByPhone(phone)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *authService) PhoneTakenForRole(phone, role string) (bool, error) {
	user, err := s.users.GetByPhoneAndRole(phone, role)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
