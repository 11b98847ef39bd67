package models

type LoginSuccessResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

type BulkUploadSuccessResponse struct {
	Message  string           `json:"message"`
	Total    int              `json:"total"`
	Inserted int64            `json:"inserted"`
	Report   BulkInsertReport `json:"report"`
}
