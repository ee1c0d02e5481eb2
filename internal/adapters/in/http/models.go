package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChatRequest is one courier message. The optional delivery_id and
// target_status pair carries a structured status change alongside the text.
type ChatRequest struct {
	Message      string `json:"message"`
	DeliveryID   string `json:"delivery_id,omitempty"`
	TargetStatus string `json:"target_status,omitempty"`
}

// ChatResponse is the answered turn.
type ChatResponse struct {
	Answer         string   `json:"answer"`
	QueryType      string   `json:"query_type"`
	Suggestions    []string `json:"suggestions"`
	AppliedAction  string   `json:"applied_action,omitempty"`
	ResponseTimeMS int64    `json:"response_time_ms"`
}

// Delivery is one delivery row in listings.
type Delivery struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"tracking_number"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	CustomerAddress string    `json:"customer_address"`
	CODAmount       float64   `json:"cod_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpdateStatusRequest asks to move one delivery to a new status. The note is
// optional free text kept in the delivery's audit log.
type UpdateStatusRequest struct {
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	Note           string `json:"note,omitempty"`
}

// UpdateStatusResponse confirms an applied status change.
type UpdateStatusResponse struct {
	Message        string `json:"message"`
	TrackingNumber string `json:"tracking_number"`
	NewStatus      string `json:"new_status"`
}

// KnowledgeSearchRequest searches the knowledge base.
type KnowledgeSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// KnowledgeEntry is one knowledge base match.
type KnowledgeEntry struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Categories lists the distinct knowledge base categories.
type Categories struct {
	Categories []string `json:"categories"`
}

// DashboardSummary is the courier's operational snapshot.
type DashboardSummary struct {
	ActiveDeliveries int      `json:"active_deliveries"`
	InTransit        int      `json:"in_transit"`
	CompletedToday   int      `json:"completed_today"`
	FailedToday      int      `json:"failed_today"`
	SuccessRate      float64  `json:"success_rate"`
	EarningsToday    float64  `json:"earnings_today"`
	Suggestions      []string `json:"suggestions"`
}
