package access

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

// CodeLength is the fixed length of every customer access code.
const CodeLength = 5

// codeAlphabet deliberately omits 0/O and 1/I so codes survive being
// read over the phone or copied by hand.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// AccessCode maps a short shareable code to a media folder.
type AccessCode struct {
	Code            string    `json:"code"`
	DisplayName     string    `json:"display_name,omitempty"`
	SharePath       string    `json:"share_path,omitempty"`
	KeepAliveMonths int       `json:"keep_alive_months"`
	CreatedOn       time.Time `json:"created_on"`
}

// ExpiresOn returns the computed expiry. ok is false when the code
// never expires (KeepAliveMonths <= 0).
func (a *AccessCode) ExpiresOn() (time.Time, bool) {
	if a.KeepAliveMonths <= 0 {
		return time.Time{}, false
	}
	return a.CreatedOn.AddDate(0, a.KeepAliveMonths, 0), true
}

// ActiveAt reports whether the code is still valid at the given time.
func (a *AccessCode) ActiveAt(now time.Time) bool {
	expires, ok := a.ExpiresOn()
	if !ok {
		return true
	}
	return !now.After(expires)
}

// Projection is the admin-facing view of an AccessCode with derived
// fields computed.
type Projection struct {
	Code            string     `json:"code"`
	DisplayName     string     `json:"display_name,omitempty"`
	SharePath       string     `json:"share_path,omitempty"`
	KeepAliveMonths int        `json:"keep_alive_months"`
	CreatedOn       time.Time  `json:"created_on"`
	ExpiresOn       *time.Time `json:"expires_on,omitempty"`
	Active          bool       `json:"active"`
}

// Project computes the projection at the given time.
func (a *AccessCode) Project(now time.Time) Projection {
	p := Projection{
		Code:            a.Code,
		DisplayName:     a.DisplayName,
		SharePath:       a.SharePath,
		KeepAliveMonths: a.KeepAliveMonths,
		CreatedOn:       a.CreatedOn,
		Active:          a.ActiveAt(now),
	}
	if expires, ok := a.ExpiresOn(); ok {
		p.ExpiresOn = &expires
	}
	return p
}

// NormalizeCode uppercases and trims a user-supplied code. Lookups are
// case-insensitive; the stored key is always the normalized form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is exactly CodeLength characters from
// the code alphabet. Callers must reject invalid codes before querying
// the registry.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}
	return true
}

// randomCode draws CodeLength characters from the code alphabet using
// crypto/rand.
func randomCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
