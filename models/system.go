package models

// SystemMetrics is one host sample from the metrics provider.
type SystemMetrics struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
	Hostname      string  `json:"hostname"`
	Timestamp     string  `json:"timestamp"`
}

type SystemStatus struct {
	Application string `json:"application"`
	Database    string `json:"database"`
	Hostname    string `json:"hostname"`
	Timestamp   string `json:"timestamp"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Hostname  string `json:"hostname"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ProviderError is returned in place of a sample when the provider fails.
type ProviderError struct {
	Error     string `json:"error"`
	Hostname  string `json:"hostname"`
	Timestamp string `json:"timestamp"`
}

type DemoLBResponse struct {
	RequestID int64  `json:"request_id"`
	Hostname  string `json:"hostname"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}
