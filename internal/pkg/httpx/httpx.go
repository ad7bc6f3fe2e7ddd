package httpx

import "github.com/gin-gonic/gin"

// Response 统一响应信封：data 只在查询类接口返回
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Status  bool        `json:"status"`
}

// OK 成功响应
func OK(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{Data: data, Message: message, Status: true})
}

// Fail 失败响应，status 恒为 false
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Message: message, Status: false})
}
