package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode switches gin into release mode for production so its
// verbose debug output never reaches a production log.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
