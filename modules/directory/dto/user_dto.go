package dto

// UpsertUserRequest creates or updates one directory entry keyed by email.
type UpsertUserRequest struct {
	Email         string `json:"email"`
	Department    string `json:"department"`
	Division      string `json:"division"`
	Subdepartment string `json:"subdepartment"`
	IsManager     bool   `json:"is_manager"`
}
