package types

// LoginRequest is the admin sign-in form
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateDishRequest is the add-dish form. Omitted flags default to true, an
// omitted category to Chaat and an omitted spice level to Medium.
type CreateDishRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        Amount `json:"price"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url"`
	SpiceLevel   string `json:"spice_level"`
	IsVegetarian *bool  `json:"is_vegetarian"`
	IsAvailable  *bool  `json:"is_available"`
}

// UpdateDishRequest is a partial dish update; nil fields are left unchanged
type UpdateDishRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Price        *Amount `json:"price"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"image_url"`
	SpiceLevel   *string `json:"spice_level"`
	IsVegetarian *bool   `json:"is_vegetarian"`
	IsAvailable  *bool   `json:"is_available"`
}

// UpdateMenuContentRequest is a partial update of the menu page copy
type UpdateMenuContentRequest struct {
	Heading     *string `json:"heading"`
	Tagline     *string `json:"tagline"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}
