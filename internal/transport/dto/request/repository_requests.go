package request

type SetIgnoreLabelsRequest struct {
	Owner        string   `json:"owner"`
	Name         string   `json:"name"`
	IgnoreLabels []string `json:"ignore_labels"`
}
