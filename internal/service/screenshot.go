package service

import (
	"encoding/base64"
	"errors"
	"strings"
)

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeScreenshot decodes a base64 image, dropping a data-URI prefix
// ("data:image/png;base64,") when present.
func DecodeScreenshot(raw string) ([]byte, error) {
	if i := strings.IndexByte(raw, ','); i >= 0 {
		raw = raw[i+1:]
	}
	raw = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, raw)
	if raw == "" {
		return nil, errors.New("empty screenshot payload")
	}

	var lastErr error
	for _, enc := range base64Encodings {
		data, err := enc.DecodeString(raw)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
