package tokenwebhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	pledgesvc "launchpad-backend/internal/application/pledges"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers receives signed token transfer notifications from the bridge.
type Handlers struct {
	Service       *pledgesvc.Service
	WebhookSecret string
}

type transferEvent struct {
	TokenID  string `json:"token_id"`
	SenderID string `json:"sender_id"`
	Amount   int64  `json:"amount"`
	Memo     string `json:"memo"`
}

// HandleTransfer POST /api/v1/webhooks/token-transfer: raw body, signature
// verification, then ledger update. The response tells the bridge how much of
// the transfer to return to the sender: 0 means fully accepted.
func (h *Handlers) HandleTransfer(c *fiber.Ctx) error {
	rawBody := c.BodyRaw()
	sig := c.Get("Bridge-Signature")

	if len(rawBody) == 0 {
		log.Warn().Msg("token webhook received empty body")
		return c.Status(400).SendString("Webhook Error: empty body")
	}

	if err := verifySignature(rawBody, sig, h.WebhookSecret); err != nil {
		log.Warn().Err(err).Bool("has_sig", sig != "").Msg("token webhook signature verification failed")
		return c.Status(400).SendString(fmt.Sprintf("Webhook Error: %s", err.Error()))
	}

	var event transferEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		log.Warn().Err(err).Msg("token webhook JSON parse failed")
		return c.Status(400).SendString(fmt.Sprintf("Webhook Error: %s", err.Error()))
	}

	result, err := h.Service.HandleIncomingTransfer(c.Context(), event.TokenID, event.SenderID, event.Amount, event.Memo)
	if err != nil {
		log.Error().Err(err).Str("token_id", event.TokenID).Msg("token webhook processing failed")
		return c.Status(500).SendString("Webhook Error: processing failed")
	}
	return c.Status(200).JSON(result)
}

// verifySignature checks the Bridge-Signature header ("t=<unix>,v1=<hex hmac>")
// against an HMAC-SHA256 of "<timestamp>.<payload>".
func verifySignature(payload []byte, sigHeader, secret string) error {
	if sigHeader == "" || secret == "" {
		return errors.New("missing signature or secret")
	}

	var timestamp string
	var signatures []string

	parts := strings.Split(sigHeader, ",")
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return errors.New("invalid signature format")
	}

	signedPayload := timestamp + "." + string(payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	expectedSig := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expectedSig)) {
			// 5 minute tolerance
			ts, err := strconv.ParseInt(timestamp, 10, 64)
			if err != nil {
				return errors.New("invalid timestamp")
			}
			diff := time.Now().Unix() - ts
			if diff < 0 {
				diff = -diff
			}
			if diff > 300 {
				return errors.New("timestamp too old")
			}
			return nil
		}
	}

	return errors.New("signature mismatch")
}
