package dto

// CreateChartRequest is the body of POST /api/images/create.
type CreateChartRequest struct {
	ImageURL    string `json:"imageUrl"`
	TradingDate string `json:"tradingDate"`
}

// CreateChartResponse echoes the stored trading date so clients can verify normalization.
type CreateChartResponse struct {
	Success     bool   `json:"success"`
	ID          string `json:"id"`
	TradingDate string `json:"tradingDate"`
}

// ChartResponse is one record in GET /api/images.
type ChartResponse struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	TradingDate string `json:"tradingDate"` // normalized instant, e.g. 2024-03-14T18:30:00.000Z
	UploadedAt  string `json:"uploadedAt"`
	CreatedAt   string `json:"createdAt"`
}

// MessageResponse carries a success message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a client-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
