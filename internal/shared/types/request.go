package types

// ScanRequest is the body of the scan endpoint
type ScanRequest struct {
	URL string `json:"url"`
}

// GenerateRequest is the body of the head snippet generator endpoint.
// Empty fields fall back to generator defaults.
type GenerateRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	Image          string `json:"image"`
	Author         string `json:"author"`
	Keywords       string `json:"keywords"`
	Robots         string `json:"robots"`
	Canonical      string `json:"canonical"`
	Favicon        string `json:"favicon"`
	AppleTouchIcon string `json:"appleTouchIcon"`
}

// GenerateResponse carries the rendered head snippet
type GenerateResponse struct {
	HTML string `json:"html"`
}

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}
