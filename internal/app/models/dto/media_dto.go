package dto

// MediaUploadResponse describes a stored media file
type MediaUploadResponse struct {
	URL         string `json:"url" example:"/uploads/media/3f2c9a.jpg"`
	FileName    string `json:"fileName" example:"3f2c9a.jpg"`
	ContentType string `json:"contentType" example:"image/jpeg"`
	Size        int64  `json:"size" example:"204800"`
}
