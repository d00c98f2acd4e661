package dto

import "ai-datacharts-be/pkg/dataset"

// UploadDatasetResponse mirrors the upload contract: the new session id plus
// the column profiles and preview rows the frontend renders immediately.
type UploadDatasetResponse struct {
	SessionId string                   `json:"session_id"`
	Columns   []dataset.ColumnProfile  `json:"columns"`
	Preview   []map[string]interface{} `json:"preview"`
}
