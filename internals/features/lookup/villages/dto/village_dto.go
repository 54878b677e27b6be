package dto

type CreateVillageRequest struct {
	Name string `json:"village" validate:"required,max=50"`
}
