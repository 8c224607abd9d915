package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// HMACHeader is the header Shopify signs webhook deliveries with.
const HMACHeader = "X-Shopify-Hmac-Sha256"

// VerifyWebhookHMAC reports whether signature is a valid base64-encoded
// HMAC-SHA256 of body under secret.
func VerifyWebhookHMAC(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
