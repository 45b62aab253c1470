package request

type AddRuleRequest struct {
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	Reviewer  string `json:"reviewer"`
	TeamId    *int64 `json:"team_id,omitempty"`
}

type GetRuleRequest struct {
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
}
