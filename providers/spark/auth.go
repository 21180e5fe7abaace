package spark

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
)

// assembleAuthURL builds the signed request URL for the Spark embedding
// endpoint. The signature is an HMAC-SHA256 over a canonical string of
// host, RFC-1123 date, and request line; the resulting authorization
// value is base64-encoded and carried as a query parameter alongside
// the host and date.
func assembleAuthURL(endpoint, apiKey, apiSecret, date string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	signatureOrigin := fmt.Sprintf("host: %s\ndate: %s\nPOST %s HTTP/1.1", parsed.Host, date, path)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(signatureOrigin))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	authorizationOrigin := fmt.Sprintf(
		`api_key="%s", algorithm="%s", headers="%s", signature="%s"`,
		apiKey, "hmac-sha256", "host date request-line", signature,
	)
	authorization := base64.StdEncoding.EncodeToString([]byte(authorizationOrigin))

	values := url.Values{}
	values.Set("host", parsed.Host)
	values.Set("date", date)
	values.Set("authorization", authorization)

	return endpoint + "?" + values.Encode(), nil
}
