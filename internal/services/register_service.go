package services

import (
	"log"
	"time"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/authz"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type RegisterService interface {
	// Register stages a pending registration and, when otpSend is set,
	// issues and dispatches a confirmation code.
	Register(req *models.RegisterRequest) (*models.RegisterResponse, error)
	// VerifyOTP checks the submitted code and promotes the pending
	// registration to a real account.
	VerifyOTP(req *models.VerifyOTPRequest) (*models.VerifyOTPResponse, error)
}

type registerService struct {
	regs  repositories.RegistrationRepository
	users repositories.UserRepository
	auth  AuthService
	otp   OTPService
}

func NewRegisterService(
	regs repositories.RegistrationRepository,
	users repositories.UserRepository,
	auth AuthService,
	otp OTPService,
) RegisterService {
	return &registerService{regs: regs, users: users, auth: auth, otp: otp}
}

func (s *registerService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if !authz.Valid(req.Role) {
		return nil, apperrors.Ef(apperrors.Validation, "unknown role %q", req.Role)
	}
	existing, err := s.users.GetByPhoneAndRole(req.PhoneNumber, req.Role)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.E(apperrors.Conflict, "phone number already registered")
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Без подтверждения по SMS аккаунт создаётся сразу.
	if !req.OTPSend {
		user := &models.User{
			Username:     req.Username,
			PhoneNumber:  req.PhoneNumber,
			RoleName:     req.Role,
			PasswordHash: hash,
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		return &models.RegisterResponse{
			Message: "user created",
			UserID:  user.ID,
		}, nil
	}

	// Повторная регистрация того же номера вытесняет предыдущую.
	if err := s.regs.DeletePendingByPhone(req.PhoneNumber); err != nil {
		return nil, err
	}
	pending := &models.PendingUser{
		PhoneNumber:  req.PhoneNumber,
		Username:     req.Username,
		PasswordHash: hash,
		RoleName:     req.Role,
	}
	if err := s.regs.CreatePending(pending); err != nil {
		return nil, err
	}

	resp := &models.RegisterResponse{
		Message: "registration pending verification",
		UserID:  pending.ID,
	}

	code, err := s.otp.GenerateCode()
	if err != nil {
		return nil, err
	}
	entry := &models.OTPEntry{
		PendingUserID: pending.ID,
		PhoneNumber:   pending.PhoneNumber,
		CodeHash:      s.otp.HashCode(code),
		ExpiresAt:     time.Now().Add(s.otp.TTL()),
	}
	if err := s.regs.CreateOTP(entry); err != nil {
		return nil, err
	}

	// Сбой шлюза не откатывает регистрацию и не виден клиенту:
	// код можно запросить повторно.
	if err := s.otp.Dispatch(pending.PhoneNumber, code); err != nil {
		log.Printf("[register][otp] sms dispatch to %s failed: %v", pending.PhoneNumber, err)
	}
	resp.OTPSent = true
	return resp, nil
}

func (s *registerService) VerifyOTP(req *models.VerifyOTPRequest) (*models.VerifyOTPResponse, error) {
	entry, err := s.regs.LatestUnusedOTP(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	// Снаружи не различаем "нет кода", "просрочен" и "не совпал".
	if entry == nil || time.Now().After(entry.ExpiresAt) || !s.otp.MatchCode(entry.CodeHash, req.Code) {
		return nil, apperrors.E(apperrors.Validation, "verification code is invalid or expired")
	}

	user, err := s.regs.Promote(entry.ID, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	log.Printf("[register][verify] user %s confirmed phone %s", user.ID, user.PhoneNumber)
	return &models.VerifyOTPResponse{
		Message: "phone number confirmed",
		UserID:  user.ID,
	}, nil
}
