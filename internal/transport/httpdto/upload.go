package httpdto

// PresignAttachmentRequest is used for POST /requests/:id/attachments
type PresignAttachmentRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignAttachmentResponse tells the client where to PUT the file
type PresignAttachmentResponse struct {
	UploadURL string            `json:"upload_url"`
	UploadKey string            `json:"upload_key"`
	FileURL   string            `json:"file_url"`
	Headers   map[string]string `json:"headers,omitempty"`
}
