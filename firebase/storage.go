package firebase

import "mime/multipart"

// StorageClient abstracts Firebase Storage operations for dependency injection and testing.
type StorageClient interface {
	UploadPromotionImage(file multipart.File, filename, contentType string) (string, error)
	UploadCompanyLogo(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
}

// FirebaseStorageClient is the real implementation that delegates to package-level functions.
type FirebaseStorageClient struct{}

func NewStorageClient() StorageClient {
	return &FirebaseStorageClient{}
}

func (f *FirebaseStorageClient) UploadPromotionImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadPromotionImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) UploadCompanyLogo(file multipart.File, filename, contentType string) (string, error) {
	return UploadCompanyLogo(file, filename, contentType)
}

func (f *FirebaseStorageClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}
