// Package errcode 定义随导出通知与 422 响应下发给前端的业务错误码。
package errcode

// Code 是业务错误码：0 表示成功，4xxx 是用户可以自行修正的问题，
// 5xxx 是服务端故障，重新导出可能成功。
type Code int

const (
	OK              Code = 0
	ResourceMissing Code = 4004
	InvalidDocument Code = 4022
	SystemError     Code = 5000
)

// Retryable 报告用户重新发起导出是否可能成功。
func (c Code) Retryable() bool {
	return c >= SystemError
}

// Message 返回可以直接展示给用户的提示，不包含内部错误细节。
func (c Code) Message() string {
	switch c {
	case OK:
		return ""
	case ResourceMissing:
		return "resume not found"
	case InvalidDocument:
		return "resume content is invalid, please fix it in the editor"
	default:
		return "export failed, please try again later"
	}
}
