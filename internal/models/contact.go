package models

// Contact is a counterparty person; deals reference it by id.
type Contact struct {
	Owned
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
}

type ContactInput struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
}
