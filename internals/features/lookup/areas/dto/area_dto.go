package dto

type CreateAreaRequest struct {
	Name string `json:"area" validate:"required,max=50"`
}
