package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("vendor_id", claims.VendorID)
		c.Set("user_role", claims.Role)
		if claims.EmployeeID != nil {
			c.Set("employee_id", *claims.EmployeeID)
		}
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// VendorMiddleware restricts a route to the vendor account itself, keeping
// employee tokens out (policy settings, employee management, billing).
func VendorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendor access required"})
			c.Abort()
			return
		}

		roleStr := role.(string)
		if roleStr != "VENDOR" && roleStr != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendor access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePermission gates employee tokens on a named permission from the
// employee's permissions blob. Vendor tokens always pass: the vendor owns
// every record in its scope.
func RequirePermission(db *gorm.DB, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, isEmployee := c.Get("employee_id")
		if !isEmployee {
			c.Next()
			return
		}

		var employee models.Employee
		if err := db.Where("id = ?", employeeID).First(&employee).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Employee account not found"})
			c.Abort()
			return
		}

		if employee.Status != "ACTIVE" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Employee account is not active"})
			c.Abort()
			return
		}

		var permissions map[string]bool
		if len(employee.Permissions) > 0 {
			if err := json.Unmarshal(employee.Permissions, &permissions); err != nil {
				c.JSON(http.StatusForbidden, gin.H{"error": "Invalid employee permissions"})
				c.Abort()
				return
			}
		}

		if !permissions[permission] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
