package handlers

import "mime/multipart"

type mockStorage struct {
	UploadPromotionImageFn func(file multipart.File, filename, contentType string) (string, error)
	UploadCompanyLogoFn    func(file multipart.File, filename, contentType string) (string, error)
	DeleteFileFn           func(objectPath string) error
	DeleteFileCalls        []string
	UploadCallCount        int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) UploadPromotionImage(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadPromotionImageFn != nil {
		return m.UploadPromotionImageFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/promotions/test_image.jpg", nil
}

func (m *mockStorage) UploadCompanyLogo(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadCompanyLogoFn != nil {
		return m.UploadCompanyLogoFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/logos/test_logo.jpg", nil
}

func (m *mockStorage) DeleteFile(objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}
