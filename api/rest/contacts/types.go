package contacts

// CreateRequest is the payload for adding a contact
type CreateRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=50"`
	Surname   string  `json:"surname" binding:"required,min=1,max=50"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required,min=5,max=20"`
	Birthdate string  `json:"birthdate" binding:"required,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty"`
}

// UpdateRequest is a partial update, absent fields keep their value
type UpdateRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Surname   *string `json:"surname,omitempty" binding:"omitempty,min=1,max=50"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,min=5,max=20"`
	Birthdate *string `json:"birthdate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty"`
}
