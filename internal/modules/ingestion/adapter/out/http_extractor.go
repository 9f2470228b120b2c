package out

import (
	"context"
	"encoding/json"
	"fmt"

	"neuradocs/internal/modules/ingestion/domain"
	ingestionout "neuradocs/internal/modules/ingestion/port/out"
	sessiondomain "neuradocs/internal/modules/session/domain"
	"neuradocs/internal/platform/backend"
)

const fileField = "file"

type HTTPExtractor struct {
	client *backend.Client
	path   string
}

func NewHTTPExtractor(client *backend.Client, path string) ingestionout.Extractor {
	return &HTTPExtractor{client: client, path: path}
}

func (e *HTTPExtractor) Extract(ctx context.Context, file sessiondomain.SelectedFile) (domain.Extraction, error) {
	if file.Payload == nil {
		return domain.Extraction{}, fmt.Errorf("file %q has no payload", file.Name)
	}
	content, err := file.Payload()
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer content.Close()

	resp, err := e.client.PostFile(ctx, e.path, fileField, file.Name, content)
	if err != nil {
		return domain.Extraction{}, err
	}
	return decodeExtraction(resp.Body)
}

// decodeExtraction reads {"chunks": [...]}. A missing or null chunks field is
// an empty result; a body that is not an object, or chunks that are not a
// list of strings, degrade to an empty result instead of failing.
func decodeExtraction(body []byte) (domain.Extraction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return domain.Extraction{Chunks: []string{}, Degraded: true}, nil
	}
	if raw, ok := fields["error"]; ok {
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" {
			return domain.Extraction{}, &backend.RemoteError{Message: msg}
		}
	}
	raw, ok := fields["chunks"]
	if !ok || string(raw) == "null" {
		return domain.Extraction{Chunks: []string{}}, nil
	}
	var chunks []string
	if err := json.Unmarshal(raw, &chunks); err != nil {
		return domain.Extraction{Chunks: []string{}, Degraded: true}, nil
	}
	return domain.Extraction{Chunks: chunks}, nil
}
