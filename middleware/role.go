package middleware

import (
	"errors"
	"log"
	"net/http"

	"expensetracker/database"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireAdmin 后台接口权限校验，需在 JWTAuth 之后使用。
// 以数据库中的当前角色为准，角色调整后旧 token 立即失去后台权限。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "请先登录"})
			c.Abort()
			return
		}

		var user models.User
		err := database.DB.Select("id", "role").First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "用户不存在"})
			c.Abort()
			return
		}
		if err != nil {
			log.Printf("[%s] 查询用户角色失败: %v", GetRequestID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "权限校验失败"})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "无权限访问"})
			c.Abort()
			return
		}
		c.Set("role", user.Role)
		c.Next()
	}
}
