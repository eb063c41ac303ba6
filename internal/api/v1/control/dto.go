package control

type AllowRegisterRequest struct {
	EnableRegister *bool `json:"enable_register" binding:"required"`
}

type AddUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
	Valid    bool   `json:"valid"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Valid    *bool   `json:"valid"`
}

type DisableUserRequest struct {
	UserID  uint `json:"user_id" binding:"required"`
	Disable bool `json:"disable"`
}

type CreateOrgRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type AddOrgMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	OrgID  uint `json:"org_id" binding:"required"`
}
