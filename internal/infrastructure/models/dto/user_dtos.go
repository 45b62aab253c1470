package dto

type SetPausedDTO struct {
	Login  string
	Paused bool
}

type GetReviewDTO struct {
	Login  string
	Status string
}
