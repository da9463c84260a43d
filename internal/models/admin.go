package models

type OverviewStats struct {
	TotalEvents    int64   `json:"total_events"`
	TotalUsers     int64   `json:"total_users"`
	TotalPhotos    int64   `json:"total_photos"`
	TotalStorageGB float64 `json:"total_storage_gb"`
}

type AdminEventResponse struct {
	EventResponse
	Host *UserResponse `json:"host,omitempty"`
}

type AdminEventListResponse struct {
	Events   []AdminEventResponse `json:"events"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	HasMore  bool                 `json:"has_more"`
}

type AdminUserResponse struct {
	UserResponse
	EventCount  int64 `json:"event_count"`
	IsAdmin     bool  `json:"is_admin"`
	IsSuspended bool  `json:"is_suspended"`
}

type AdminUserListResponse struct {
	Users    []AdminUserResponse `json:"users"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	HasMore  bool                `json:"has_more"`
}

type RecentUpload struct {
	PhotoResponse
	HostEmail string `json:"host_email,omitempty"`
}

type RecentUploadsResponse struct {
	Uploads  []RecentUpload `json:"uploads"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type SystemExportResponse struct {
	ExportJobID string `json:"export_job_id"`
}

type UpdateUserStatusRequest struct {
	IsSuspended bool `json:"is_suspended"`
}

type UpdateEventStatusRequest struct {
	IsActive   *bool `json:"is_active"`
	IsArchived *bool `json:"is_archived"`
}
