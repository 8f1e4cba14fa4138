package model

type Document struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeKB      int64  `json:"size_kb"`
	Ctime       int64  `json:"ctime"`
}

// Chunk is one fixed-width window of a document's extracted text. The
// company id is denormalized from the parent document so retrieval can
// filter by company without a join. Chunks are immutable; they are only
// bulk-deleted together with their document.
type Chunk struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"document_id"`
	CompanyID  int64  `json:"company_id"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
	Ctime      int64  `json:"ctime"`
}
