package imagestore

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// IsDataURI reports whether uri is an inline data: URI.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// EstimateDataURISize estimates the decoded byte size of a data: URI from
// its base64 payload length. Padding characters are discounted; the result
// is an estimate, not an exact byte count.
func EstimateDataURISize(uri string) int64 {
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return 0
	}
	payload := uri[idx+1:]
	padding := int64(strings.Count(payload, "="))
	return int64(len(payload))*3/4 - padding
}

// DecodeDataURI returns the decoded payload and media type of a data: URI.
func DecodeDataURI(uri string) (data []byte, mediaType string, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data uri")
	}

	mediaType = strings.TrimSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decoding base64 payload: %w", err)
		}
		return data, mediaType, nil
	}
	return []byte(payload), mediaType, nil
}
