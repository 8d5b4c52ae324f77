package model

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	APIVersion string `json:"api_version"`
}

// ServiceInfo is returned by GET /.
type ServiceInfo struct {
	APIName     string            `json:"api_name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}
