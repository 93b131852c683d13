package handler

// createUserRequest deliberately has no role field: accounts created through
// the public endpoint always start as "user". Admins are provisioned out of
// band (see cmd/seed).
type createUserRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=100,password"`
	Name           string `json:"name" validate:"required,min=2,max=50"`
	RestaurantName string `json:"restaurantName"`
	Phone          string `json:"phone"`
}

// updateUserRequest is a partial update; absent fields stay untouched.
type updateUserRequest struct {
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=100,password"`
	Name           *string `json:"name" validate:"omitempty,min=2,max=50"`
	RestaurantName *string `json:"restaurantName"`
	Phone          *string `json:"phone"`
}
