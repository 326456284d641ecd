package handlers

import (
	"encoding/json"
	"net/http"

	"rewardify-backend/firebase"
	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	vendorID, exists := c.Get("vendor_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var vendor models.Vendor
	if err := h.DB.Preload("CompanyDetails").Preload("CompanyDetails.TaxDetails").
		Where("id = ?", vendorID).First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var subscription models.SubscriptionInfo
	response := gin.H{
		"id":                 vendor.ID,
		"email":              vendor.Email,
		"name":               vendor.Name,
		"phone":              vendor.Phone,
		"role":               vendor.Role,
		"profile_completion": vendor.ProfileCompletion,
		"settings":           vendor.Settings,
		"company_details":    vendor.CompanyDetails,
	}
	if err := h.DB.Where("vendor_id = ?", vendorID).First(&subscription).Error; err == nil {
		response["subscription"] = subscription
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProfile updates the vendor's own fields and, when supplied, replaces
// the company details and tax details in one pass. Completing company details
// marks onboarding as done.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	vendorID, exists := c.Get("vendor_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name           *string `json:"name"`
		Phone          *string `json:"phone"`
		CompanyDetails *struct {
			CompanyName    string `json:"company_name" binding:"required"`
			CompanyAddress string `json:"company_address"`
			TaxDetails     []struct {
				CountryCode   string  `json:"country_code"`
				TaxType       string  `json:"tax_type"`
				TaxNumber     string  `json:"tax_number"`
				TaxPercentage float64 `json:"tax_percentage"`
			} `json:"tax_details"`
		} `json:"company_details"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var vendor models.Vendor
	if err := h.DB.Where("id = ?", vendorID).First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if req.CompanyDetails != nil {
			var company models.CompanyDetails
			result := tx.Where("vendor_id = ?", vendor.ID).First(&company)
			company.VendorID = vendor.ID
			company.CompanyName = req.CompanyDetails.CompanyName
			company.CompanyAddress = req.CompanyDetails.CompanyAddress

			if result.Error != nil {
				if err := tx.Create(&company).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Save(&company).Error; err != nil {
					return err
				}
				// Tax details are replaced wholesale on every update
				if err := tx.Where("company_details_id = ?", company.ID).Delete(&models.TaxDetails{}).Error; err != nil {
					return err
				}
			}

			for _, td := range req.CompanyDetails.TaxDetails {
				detail := models.TaxDetails{
					CompanyDetailsID: company.ID,
					VendorID:         vendor.ID,
					CountryCode:      td.CountryCode,
					TaxType:          td.TaxType,
					TaxNumber:        td.TaxNumber,
					TaxPercentage:    td.TaxPercentage,
				}
				if err := tx.Create(&detail).Error; err != nil {
					return err
				}
			}

			vendor.ProfileCompletion = true
		}

		return tx.Save(&vendor).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// UpdateSettings stores the vendor's dashboard preferences blob as-is.
func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	vendorID, exists := c.Get("vendor_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Theme    string `json:"theme"`
		Language string `json:"language"`
		Tooltips *bool  `json:"tooltips"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	settings := map[string]interface{}{}
	if req.Theme != "" {
		settings["theme"] = req.Theme
	}
	if req.Language != "" {
		settings["language"] = req.Language
	}
	if req.Tooltips != nil {
		settings["tooltips"] = *req.Tooltips
	}

	value, err := json.Marshal(settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode settings"})
		return
	}

	if err := h.DB.Model(&models.Vendor{}).Where("id = ?", vendorID).
		Update("settings", datatypes.JSON(value)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}

// UploadCompanyLogo accepts a multipart image and stores it, replacing any
// previous logo.
func (h *ProfileHandler) UploadCompanyLogo(c *gin.Context) {
	vendorID, exists := c.Get("vendor_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var company models.CompanyDetails
	if err := h.DB.Where("vendor_id = ?", vendorID).First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company details not found"})
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo image is required"})
		return
	}

	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	if company.CompanyLogo != "" {
		if objectPath, pathErr := utils.ExtractObjectPath(company.CompanyLogo); pathErr == nil {
			_ = h.Storage.DeleteFile(objectPath)
		}
	}

	logoURL, err := h.Storage.UploadCompanyLogo(
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logo upload failed"})
		return
	}

	if err := h.DB.Model(&company).Update("company_logo", logoURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save logo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company_logo": logoURL})
}
