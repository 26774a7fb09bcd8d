package utils

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"tikoncha/internal/config"
)

// SMSClient talks to the transmit SMS gateway used for OTP delivery.
// Delivery is best-effort: callers log failures, they never roll back state.
type SMSClient struct {
	BaseURL   string
	Endpoint  string
	Username  string
	SecretKey string
	ServiceID string
	DryRun    bool

	HTTPClient *http.Client
}

type sendSMSResponse struct {
	TransactionID string `json:"transactionid"`
	SMSID         string `json:"smsid"`
	Parts         int    `json:"parts"`
	ErrorCode     string `json:"errorCode"`
	ErrorMsg      string `json:"errorMsg"`
}

func NewSMSClient(cfg config.SMSConfig) *SMSClient {
	return &SMSClient{
		BaseURL:   cfg.BaseURL,
		Endpoint:  cfg.Endpoint,
		Username:  cfg.Username,
		SecretKey: cfg.SecretKey,
		ServiceID: cfg.ServiceID,
		DryRun:    cfg.DryRun,
		// шлюз иногда подвисает, дольше 10с не ждём
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// accessToken builds the time-keyed token the gateway expects.
func (c *SMSClient) accessToken(utime int64) string {
	accessString := fmt.Sprintf("TransmitSMS %s %s %d", c.Username, c.SecretKey, utime)
	return fmt.Sprintf("%x", md5.Sum([]byte(accessString)))
}

// SendSMS — отправка SMS (или имитация в dry-run).
func (c *SMSClient) SendSMS(phone, text string) error {
	if c.DryRun || c.Username == "" {
		log.Printf("[sms][dry-run] to=%s text=%q", phone, text)
		return nil
	}

	utime := time.Now().Unix()
	payload := map[string]any{
		"utime":    utime,
		"username": c.Username,
		"service":  map[string]string{"service": c.ServiceID},
		"message": map[string]string{
			"smsid": strconv.FormatInt(utime, 10),
			"phone": phone,
			"text":  text,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Token", c.accessToken(utime))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var result sendSMSResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("parse sms response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway error %s: %s", result.ErrorCode, result.ErrorMsg)
	}
	log.Printf("[sms][sent] to=%s smsid=%s parts=%d", phone, result.SMSID, result.Parts)
	return nil
}
