package admin

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Admin     *Admin `json:"admin"`
	ExpiresAt string `json:"expires_at"`
}

type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Role     Role   `json:"role" binding:"omitempty,oneof=admin super_admin"`
}

type UpdateAdminRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *Role   `json:"role" binding:"omitempty,oneof=admin super_admin"`
	IsActive *bool   `json:"is_active"`
}

type ActivityLogFilters struct {
	AdminID  *int64 `form:"admin_id"`
	Entity   string `form:"entity"`
	Action   string `form:"action"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ActivityLogListResponse struct {
	Entries  []ActivityLog `json:"entries"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
