package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest trả về log entry gắn sẵn thông tin request hiện tại.
// Dùng trong error handler và middleware để trace lỗi theo request.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetErrorLogger().WithFields(logrus.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
		"request_id": c.Get("X-Request-ID"),
	})
}
