package dto

type SetIgnoreLabelsDTO struct {
	Owner        string
	Name         string
	IgnoreLabels []string
}
