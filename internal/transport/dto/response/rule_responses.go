package response

type RuleResponse struct {
	Id         int64  `json:"id"`
	Repository string `json:"repository"`
	ShortCode  string `json:"short_code"`
	Reviewer   string `json:"reviewer"`
	TeamId     *int64 `json:"team_id,omitempty"`
	CreatedAt  string `json:"createdAt"`
}
