// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"github.com/gin-gonic/gin"

	apperrors "z-novel-blueprint-api/pkg/errors"
)

// ListResponse 列表响应
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// DeleteResponse 删除成功响应
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// OK 返回 200，载荷直接作为响应体
func OK[T any](c *gin.Context, data T) {
	c.JSON(200, data)
}

// OKList 返回 200 列表响应
// items 为 nil 时序列化为空数组而非 null
func OKList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(200, ListResponse[T]{Items: items, Total: len(items)})
}

// Created 返回 201
func Created[T any](c *gin.Context, data T) {
	c.JSON(201, data)
}

// Deleted 返回 200 删除确认
func Deleted(c *gin.Context, message, id string) {
	c.JSON(200, DeleteResponse{Message: message, ID: id})
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Code:    httpCode,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleError 将业务错误映射为 HTTP 错误响应
func HandleError(c *gin.Context, err error) {
	if apperrors.IsAppError(err) {
		appErr := apperrors.AsAppError(err)
		Error(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	InternalError(c, "internal server error")
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 返回 401 错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden 返回 403 错误
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// ServiceUnavailable 返回 503 错误
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, 503, message)
}
