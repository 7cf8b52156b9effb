package errors

import (
	"errors"

	"tradeagent/pkg/errors/ecode"
)

// Err 带错误码的业务错误，Cause 保留原始错误便于 errors.As/Is
type Err struct {
	Code    int
	Message string
	Cause   error
}

func (e *Err) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Err) Unwrap() error {
	return e.Cause
}

func New(code int, message string) error {
	return &Err{Code: code, Message: message}
}

// Wrap 给已有错误附加错误码，err 为 nil 时返回 nil
func Wrap(err error, code int, message string) error {
	if err == nil {
		return nil
	}
	return &Err{Code: code, Message: message, Cause: err}
}

// DecodeErr 解析出错误码和提示信息，未知错误统一按 ServerErr 处理
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var e *Err
	if errors.As(err, &e) {
		return e.Code, e.Error()
	}
	return ecode.ServerErr, err.Error()
}
