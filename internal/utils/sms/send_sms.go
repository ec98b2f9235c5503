package sms

import (
	"Billfold-Backend/internal/utils"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type (
	// Sender delivers a short text message. Constructed once at startup and
	// injected into services that notify by SMS.
	Sender interface {
		Send(toNumber string, body string) error
	}

	twilioSender struct {
		accountSID string
		authToken  string
		fromNumber string
		baseURL    string
		httpClient *http.Client
	}
)

func NewTwilioSender() Sender {
	return &twilioSender{
		accountSID: utils.GetConfig("TWILIO_ACCOUNT_SID"),
		authToken:  utils.GetConfig("TWILIO_AUTH_TOKEN"),
		fromNumber: utils.GetConfig("TWILIO_FROM_NUMBER"),
		baseURL:    "https://api.twilio.com",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *twilioSender) Send(toNumber string, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	form := url.Values{}
	form.Set("To", toNumber)
	form.Set("From", s.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio API error: %s - %s", resp.Status, string(bodyBytes))
	}

	return nil
}
