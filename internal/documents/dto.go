package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
}

// UploadResponse extends the document body with the ingestion outcome.
// Indexed is false when the document was created but could not be made
// searchable.
type UploadResponse struct {
	DocumentResponse
	FileURL string `json:"fileUrl"`
	Indexed bool   `json:"indexed"`
}

func toResponse(doc Document) DocumentResponse {
	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		Metadata:  metadata,
		CreatedAt: doc.CreatedAt,
	}
}

func toUploadResponse(result IngestResult) UploadResponse {
	return UploadResponse{
		DocumentResponse: toResponse(result.Document),
		FileURL:          result.Locator,
		Indexed:          result.Indexed,
	}
}
