package dto

type CreateProviderRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=150"`
	Phone          string  `json:"phone" validate:"required,min=10,max=20"`
	CategoryID     uint    `json:"category_id" validate:"required"`
	NeighborhoodID uint    `json:"neighborhood_id" validate:"required"`
	Description    *string `json:"description"`
}

// UpdateProviderRequest is a partial patch; nil fields are left unchanged.
type UpdateProviderRequest struct {
	Name           *string `json:"name" validate:"omitnil,min=2,max=150"`
	Phone          *string `json:"phone" validate:"omitnil,min=10,max=20"`
	Description    *string `json:"description"`
	CategoryID     *uint   `json:"category_id" validate:"omitnil,min=1"`
	NeighborhoodID *uint   `json:"neighborhood_id" validate:"omitnil,min=1"`
}

type RejectProviderRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type UpdateProfileTypeRequest struct {
	ProfileType string `json:"profile_type" validate:"required,oneof=customer provider admin"`
}

type CreateReviewRequest struct {
	ProviderID uint    `json:"provider_id" validate:"required"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment" validate:"omitnil,max=2000"`
}

type LogContactRequest struct {
	ProviderID    uint   `json:"provider_id" validate:"required"`
	ContactMethod string `json:"contact_method" validate:"omitempty,max=50"`
}

type CreateCategoryRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon" validate:"omitnil,max=50"`
	Synonyms    []string `json:"synonyms"`
}

type UpdateCategoryRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=3,max=100"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon" validate:"omitnil,max=50"`
	Synonyms    []string `json:"synonyms"`
}

type CreateNeighborhoodRequest struct {
	Name string `json:"name" validate:"required,min=3,max=100"`
}
