package ecode

// 接口错误码，0 表示成功
const (
	Success        = 0
	ServerErr      = 10001 // 服务内部错误
	InvalidParams  = 10002 // 参数错误
	RequireAuthErr = 10003 // 鉴权失败
	NotFound       = 10004 // 资源不存在
	TooManyRequest = 10005 // 请求过于频繁
)

var messages = map[int]string{
	Success:        "success",
	ServerErr:      "internal server error",
	InvalidParams:  "invalid params",
	RequireAuthErr: "unauthorized",
	NotFound:       "not found",
	TooManyRequest: "too many requests",
}

// Text 返回错误码的默认描述
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "unknown error"
}
