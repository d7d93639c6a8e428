package documents

import (
	"encoding/json"
	"time"
)

// MetadataKeyFileURL holds the object-store locator of the original binary.
const MetadataKeyFileURL = "file_url"

// Document represents one ingested file. The metadata store is the system
// of record; the search index only keeps a derived copy.
type Document struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Metadata  map[string]string
	CreatedAt time.Time
}

// encodeMetadata serializes the open key/value mapping for storage as a
// text column. An empty map encodes as "{}".
func encodeMetadata(metadata map[string]string) (string, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeMetadata parses a stored metadata blob back into a mapping.
func decodeMetadata(raw string) (map[string]string, error) {
	if raw == "" {
		return map[string]string{}, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	return metadata, nil
}
