package model

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type GetUserRequest struct {
	ID string `json:"id" form:"id"`
}

type GetUserResponse User

type GetListUserRequest struct {
	Role     string `json:"role" form:"role"`
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`

	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListUserResponse struct {
	Users []User `json:"users"`
}

type UpdateUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

type DeleteUserResponse struct{}
