package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// Signature webhook 签名头，HMAC-SHA256(body) 的 hex
	Signature = "X-Signature"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)
