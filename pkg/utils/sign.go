package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrLinkExpired       = errors.New("link expired")
)

// SignResource produces an HMAC token tying a resource id to an expiry
// instant. Used for time-limited file download links.
func SignResource(resourceID string, expiresAt time.Time) string {
	mac := hmac.New(sha256.New, jwtSecret)
	fmt.Fprintf(mac, "%s:%d", resourceID, expiresAt.Unix())
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignedResource checks the token and the expiry carried alongside it.
func VerifySignedResource(resourceID, expiresUnix, signature string) error {
	exp, err := strconv.ParseInt(expiresUnix, 10, 64)
	if err != nil {
		return ErrSignatureMismatch
	}

	expected := SignResource(resourceID, time.Unix(exp, 0))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}

	if time.Now().After(time.Unix(exp, 0)) {
		return ErrLinkExpired
	}
	return nil
}
