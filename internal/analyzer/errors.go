package analyzer

import (
	"errors"

	"resume-analyzer-go/internal/constants"
)

// ErrServerError 外部服务返回了非2xx状态码
// 响应体只进诊断日志，绝不原样透给用户
var ErrServerError = errors.New(constants.MsgServerError)

// ErrUnexpectedResponse 外部服务返回了非JSON内容类型
var ErrUnexpectedResponse = errors.New(constants.MsgUnexpectedResponse)
