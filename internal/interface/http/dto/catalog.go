package dto

// CreateAuthorRequest HTTP作者档案创建请求
type CreateAuthorRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"威廉·肯尼迪"`
	Bio         string `json:"bio" binding:"omitempty,max=2000"`
	Nationality string `json:"nationality" binding:"omitempty,max=50" example:"美国"`
}

// UpdateAuthorRequest HTTP作者档案更新请求,空字段不修改
type UpdateAuthorRequest struct {
	Name        string `json:"name" binding:"omitempty,max=100"`
	Bio         string `json:"bio" binding:"omitempty,max=2000"`
	Nationality string `json:"nationality" binding:"omitempty,max=50"`
}

// AuthorResponse HTTP作者档案响应
type AuthorResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"威廉·肯尼迪"`
	Bio         string `json:"bio"`
	Nationality string `json:"nationality" example:"美国"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// CreateEditorialRequest HTTP出版社档案创建请求
type CreateEditorialRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"人民邮电出版社"`
	Address string `json:"address" binding:"omitempty,max=200"`
	Website string `json:"website" binding:"omitempty,url,max=200"`
}

// UpdateEditorialRequest HTTP出版社档案更新请求,空字段不修改
type UpdateEditorialRequest struct {
	Name    string `json:"name" binding:"omitempty,max=100"`
	Address string `json:"address" binding:"omitempty,max=200"`
	Website string `json:"website" binding:"omitempty,url,max=200"`
}

// EditorialResponse HTTP出版社档案响应
type EditorialResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"人民邮电出版社"`
	Address   string `json:"address"`
	Website   string `json:"website"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// PageRequest 通用分页请求
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
