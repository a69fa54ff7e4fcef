package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway creates orders at the payment provider. Signature verification is
// a local HMAC computation, not a remote call, so it lives on the package.
type Gateway interface {
	CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error)
	KeyID() string
}

type Razorpay struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret), keyID: keyID}
}

// KeyID returns the publishable key the client needs for the checkout flow.
func (g *Razorpay) KeyID() string { return g.keyID }

func (g *Razorpay) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("gateway order create: %w", err)
	}
	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("gateway order create: response missing id")
	}
	return id, nil
}

// VerifySignature checks a settlement confirmation against
// hex(HMAC-SHA256(secret, "orderID|paymentID")). Constant-time compare.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
