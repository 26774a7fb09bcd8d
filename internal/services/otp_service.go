package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const (
	otpDigits = 6
	otpTTL    = 5 * time.Minute
)

// SMSSender is what the OTP layer needs from the gateway client.
type SMSSender interface {
	SendSMS(phone, text string) error
}

type OTPService interface {
	GenerateCode() (string, error)
	HashCode(code string) string
	MatchCode(hash, code string) bool
	TTL() time.Duration
	Dispatch(phone, code string) error
}

type otpService struct {
	sms SMSSender
}

func NewOTPService(sms SMSSender) OTPService {
	return &otpService{sms: sms}
}

// GenerateCode draws a 6-digit code from crypto/rand. Leading zeros are
// kept, so the keyspace is the full 10^6.
func (s *otpService) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func (s *otpService) HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (s *otpService) MatchCode(hash, code string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(s.HashCode(code))) == 1
}

func (s *otpService) TTL() time.Duration { return otpTTL }

func (s *otpService) Dispatch(phone, code string) error {
	text := fmt.Sprintf("Tikoncha: kod tasdiqlash uchun %s. Kod 5 daqiqa amal qiladi.", code)
	return s.sms.SendSMS(phone, text)
}
