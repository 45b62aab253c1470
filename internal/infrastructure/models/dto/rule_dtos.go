package dto

type AddRuleDTO struct {
	Owner     string
	Name      string
	ShortCode string
	Reviewer  string
	TeamId    *int64
}

type GetRuleDTO struct {
	Owner     string
	Name      string
	ShortCode string
}
