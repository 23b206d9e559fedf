package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/olumide/foodloan-backend/config"
)

// Termii SMS request structure
type termiiMessageRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	SMS     string `json:"sms"`
	Type    string `json:"type"`    // plain
	Channel string `json:"channel"` // dnd reaches numbers on do-not-disturb
	APIKey  string `json:"api_key"`
}

// SendOTPSMS sends a login passcode to a phone number via Termii.
func SendOTPSMS(cfg *config.SMSConfig, phoneNumber, code string) error {
	// Dev mode: without an API key the code is printed instead of sent
	if cfg.APIKey == "" {
		log.Printf("================================")
		log.Printf("[dev mode] SMS delivery disabled")
		log.Printf("OTP for %s: %s", phoneNumber, code)
		log.Printf("================================")
		return nil
	}

	content := fmt.Sprintf("Your login code is %s. It expires in 5 minutes.", code)

	requestBody := termiiMessageRequest{
		To:      phoneNumber,
		From:    cfg.SenderID,
		SMS:     content,
		Type:    "plain",
		Channel: "dnd",
		APIKey:  cfg.APIKey,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to encode SMS request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, cfg.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS delivery failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
