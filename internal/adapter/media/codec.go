// Package media converts user-supplied image and video payloads into the
// inline transport encoding consumed by the generation core.
package media

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"ordo-core/internal/domain/entity"
)

// DecodePayload accepts either a bare base64 string or a browser data URL
// ("data:image/png;base64,....") and returns the decoded blob. The MIME
// type comes from the data URL when present, otherwise from content
// sniffing, otherwise from fallback.
func DecodePayload(payload, fallback string) (*entity.Blob, error) {
	if payload == "" {
		return nil, nil
	}

	declared := ""
	if strings.HasPrefix(payload, "data:") {
		header, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, fmt.Errorf("parse data url: missing comma separator")
		}
		declared = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Browsers may emit unpadded output.
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("parse media payload: %w", err)
		}
	}

	return &entity.Blob{
		MIMEType: pickMIME(declared, data, fallback),
		Data:     data,
	}, nil
}

func pickMIME(declared string, data []byte, fallback string) string {
	if declared != "" {
		return declared
	}
	if sniffed := http.DetectContentType(data); sniffed != "application/octet-stream" {
		return sniffed
	}
	return fallback
}
