package types

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SaveResponse acknowledges a persisted history record.
type SaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// HistoryResponse wraps a page of history records.
type HistoryResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    []HistoryRecord `json:"data"`
}
