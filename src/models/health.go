package models

// StatusResponse is returned by the root probe.
type StatusResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"FLUX backend is running"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string  `json:"status" example:"ok"`
	DB     string  `json:"db" example:"connected"`
	Uptime float64 `json:"uptime" example:"12.5"`
}
