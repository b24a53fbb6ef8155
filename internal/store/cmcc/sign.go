package cmcc

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// computeSign builds the Mcloud-Sign digest:
//
//	d    = md5(base64(sorted chars of percent-encoded compact JSON))
//	f    = md5(timeStr + ":" + randomStr)
//	sign = upper(md5(d + f))
//
// A nil signPayload signs the empty string.
func computeSign(timeStr, randomStr string, signPayload any) (string, error) {
	r := ""
	if signPayload != nil {
		raw, err := compactJSON(signPayload)
		if err != nil {
			return "", err
		}
		encoded := percentEncode(string(raw))
		chars := strings.Split(encoded, "")
		sort.Strings(chars)
		r = strings.Join(chars, "")
	}

	rB64 := base64.StdEncoding.EncodeToString([]byte(r))
	d := md5Hex(rB64)
	f := md5Hex(timeStr + ":" + randomStr)
	return strings.ToUpper(md5Hex(d + f)), nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// compactJSON marshals without HTML escaping or a trailing newline, so
// the bytes match what a browser's JSON.stringify produces.
func compactJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// percentEncode mirrors JavaScript's encodeURIComponent: everything is
// escaped except ASCII letters, digits and -_.!~*'().
func percentEncode(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	for _, c := range []byte(s) {
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = randomAlphabet[i%len(randomAlphabet)]
		}
		return string(buf[:n])
	}
	for i := range buf {
		buf[i] = randomAlphabet[int(buf[i])%len(randomAlphabet)]
	}
	return string(buf)
}
