package access

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("ABCDE"))
	assert.True(t, ValidCode("Z9Y8X"))

	assert.False(t, ValidCode(""))
	assert.False(t, ValidCode("ABCD"))
	assert.False(t, ValidCode("ABCDEF"))
	assert.False(t, ValidCode("abcde"), "lowercase must be normalized before validation")
	assert.False(t, ValidCode("AB CD"))
	// Ambiguous glyphs are not part of the alphabet.
	assert.False(t, ValidCode("ABCD0"))
	assert.False(t, ValidCode("ABCDO"))
	assert.False(t, ValidCode("ABCD1"))
	assert.False(t, ValidCode("ABCDI"))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCDE", NormalizeCode("  abcde "))
	assert.Equal(t, "Z9Y8X", NormalizeCode("z9y8x"))
}

func TestRandomCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		assert.True(t, ValidCode(code), "generated code %q must validate", code)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		assert.False(t, strings.ContainsAny(code, "abcdefghijklmnopqrstuvwxyz"))
	}
}

func TestExpiry(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	rec := AccessCode{Code: "ABCDE", KeepAliveMonths: 3, CreatedOn: created}
	expires, ok := rec.ExpiresOn()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC), expires)

	assert.True(t, rec.ActiveAt(created))
	assert.True(t, rec.ActiveAt(expires))
	assert.False(t, rec.ActiveAt(expires.Add(time.Second)))
}

func TestNeverExpires(t *testing.T) {
	rec := AccessCode{Code: "ABCDE", KeepAliveMonths: 0, CreatedOn: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}

	_, ok := rec.ExpiresOn()
	assert.False(t, ok)
	assert.True(t, rec.ActiveAt(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)), "KeepAliveMonths=0 means active forever")

	p := rec.Project(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, p.Active)
	assert.Nil(t, p.ExpiresOn)
}

func TestProject(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := AccessCode{
		Code:            "ABCDE",
		DisplayName:     "Smith Residence",
		SharePath:       "Media/Smith",
		KeepAliveMonths: 6,
		CreatedOn:       created,
	}

	p := rec.Project(created.AddDate(0, 1, 0))
	assert.True(t, p.Active)
	require.NotNil(t, p.ExpiresOn)
	assert.Equal(t, created.AddDate(0, 6, 0), *p.ExpiresOn)

	p = rec.Project(created.AddDate(0, 7, 0))
	assert.False(t, p.Active)
}
