// Package permalink encodes a configuration into a single URL query value so
// wizard state can be shared as a link.
package permalink

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tphummel/nts_configurator/internal/models"
)

// Param is the query parameter that carries the encoded configuration.
const Param = "c"

// Encode serialises cfg as JSON and returns it in the URL-safe base64
// alphabet without padding.
func Encode(cfg models.Configuration) string {
	// Configuration has no field json cannot marshal.
	b, _ := json.Marshal(cfg)
	return base64.RawURLEncoding.EncodeToString(b)
}

// legacyEncodings are tried after RawURLEncoding. Older links carried
// standard, padded base64, and a '+' may arrive as a space once the query
// string has been form-decoded.
var legacyEncodings = []*base64.Encoding{
	base64.URLEncoding,
	base64.StdEncoding,
	base64.RawStdEncoding,
}

// Decode reverses Encode. It returns false, and never panics, for input that
// is not an encoded valid configuration.
func Decode(s string) (models.Configuration, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", "+"))
	if s == "" {
		return models.Configuration{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		for _, enc := range legacyEncodings {
			if raw, err = enc.DecodeString(s); err == nil {
				break
			}
		}
		if err != nil {
			return models.Configuration{}, false
		}
	}

	var cfg models.Configuration
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&cfg); err != nil {
		return models.Configuration{}, false
	}
	if dec.More() {
		return models.Configuration{}, false
	}
	if err := models.Validate(cfg); err != nil {
		return models.Configuration{}, false
	}
	return cfg, true
}

// ShareURL returns base (scheme, host and path only) with the encoded
// configuration as its query string.
func ShareURL(base string, cfg models.Configuration) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}
	u.RawQuery = url.Values{Param: {Encode(cfg)}}.Encode()
	u.Fragment = ""
	return u.String(), nil
}
