package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeagent/internal/consts"
	"tradeagent/pkg/errors"
	"tradeagent/pkg/errors/ecode"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	c.JSON(httpStatus(code), ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

func httpStatus(code int) int {
	switch code {
	case ecode.Success:
		return http.StatusOK
	case ecode.ServerErr:
		return http.StatusInternalServerError
	case ecode.NotFound:
		return http.StatusNotFound
	case ecode.RequireAuthErr:
		return http.StatusUnauthorized
	case ecode.TooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

// 签名校验失败，返回401
func RequireAuthErr(c *gin.Context, err error) {
	var message string
	if err != nil {
		message = err.Error()
	} else {
		message = "unknow error."
	}
	c.JSON(http.StatusUnauthorized, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.RequireAuthErr,
		Message:   "invalid signature:" + message,
		Data:      nil,
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.TooManyRequest,
		Message:   "The request is too frequent. Please try again later.",
		Data:      nil,
	})
}

// 请求体无法读取，返回400
func BadRequest(c *gin.Context, err error) {
	message := "bad request"
	if err != nil {
		message = err.Error()
	}
	c.JSON(http.StatusBadRequest, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.InvalidParams,
		Message:   message,
		Data:      nil,
	})
}
