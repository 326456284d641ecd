package firebase

import (
	"strings"
	"testing"
)

func TestSanitizeFilenameNormal(t *testing.T) {
	result := sanitizeFilename("image_test-file.jpg")
	if result != "image_test-file.jpg" {
		t.Errorf("expected 'image_test-file.jpg', got '%s'", result)
	}
}

func TestSanitizeFilenameSpecialChars(t *testing.T) {
	result := sanitizeFilename("my file (1)@#$.jpg")
	if strings.ContainsAny(result, " ()@#$") {
		t.Errorf("special chars not replaced: '%s'", result)
	}
}

func TestSanitizeFilenameTooLong(t *testing.T) {
	long := strings.Repeat("a", 200)
	result := sanitizeFilename(long)
	if len(result) != 100 {
		t.Errorf("expected length 100, got %d", len(result))
	}
}

func TestSanitizeFilenameEmpty(t *testing.T) {
	result := sanitizeFilename("")
	if result != "file" {
		t.Errorf("expected 'file', got '%s'", result)
	}
}

func TestSanitizeFilenameDots(t *testing.T) {
	if sanitizeFilename(".") != "file" {
		t.Error("single dot should become 'file'")
	}
	if sanitizeFilename("..") != "file" {
		t.Error("double dots should become 'file'")
	}
}

func TestUploadWithoutInitFails(t *testing.T) {
	App = nil
	_, err := uploadToBucket("promotions/test.jpg", nil, "image/jpeg")
	if err == nil {
		t.Fatal("expected error when firebase app is not initialized")
	}
}
