package cmcc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentEncode(t *testing.T) {
	assert.Equal(t, "abc-_.!~*'()", percentEncode("abc-_.!~*'()"))
	assert.Equal(t, "%7B%22a%22%3A1%7D", percentEncode(`{"a":1}`))
	assert.Equal(t, "%20", percentEncode(" "))
}

func TestComputeSignDeterministic(t *testing.T) {
	payload := map[string]any{"catalogID": "root", "endNumber": 100}

	s1, err := computeSign("2024-01-02 03:04:05", "abcdef0123456789", payload)
	require.NoError(t, err)
	s2, err := computeSign("2024-01-02 03:04:05", "abcdef0123456789", payload)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 32)
	assert.Equal(t, strings.ToUpper(s1), s1, "digest is uppercase hex")
}

func TestComputeSignKeyOrderIndependent(t *testing.T) {
	// Signing sorts the encoded characters, so two payloads with the
	// same fields must sign identically regardless of marshal order.
	a := struct {
		A int    `json:"a"`
		B string `json:"b"`
	}{1, "x"}
	b := map[string]any{"b": "x", "a": 1}

	sa, err := computeSign("t", "r", a)
	require.NoError(t, err)
	sb, err := computeSign("t", "r", b)
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
}

func TestComputeSignNilPayload(t *testing.T) {
	s, err := computeSign("t", "r", nil)
	require.NoError(t, err)
	assert.Len(t, s, 32)
}

func TestRandomString(t *testing.T) {
	s := randomString(16)
	assert.Len(t, s, 16)
	assert.NotEqual(t, s, randomString(16))
}

func TestClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{Authorization: "Basic x", Cookie: "a=b"})
	assert.NoError(t, err)
}
