package templates

type TemplateView struct {
	TaskKind      string `json:"task_kind"`
	Default       string `json:"default"`
	CustomBody    string `json:"custom_body"`
	CustomEnabled bool   `json:"custom_enabled"`
	Effective     string `json:"effective"`
}

type UpdateTemplateRequest struct {
	Body    string `json:"body" binding:"required,max=8192"`
	Enabled bool   `json:"enabled"`
}
