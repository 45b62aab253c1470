package response

type RepositorySettingsResponse struct {
	Repository   string   `json:"repository"`
	IgnoreLabels []string `json:"ignore_labels"`
}
