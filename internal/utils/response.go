package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinelist/internal/model"
)

// OK 返回 200，message 之外的载荷由调用方通过 extra 合并进响应体
func OK(c *gin.Context, message string, extra gin.H) {
	JSON(c, http.StatusOK, message, extra)
}

// Created 返回 201
func Created(c *gin.Context, message string, extra gin.H) {
	JSON(c, http.StatusCreated, message, extra)
}

// JSON 统一响应体：{"message": ..., <extra 字段平铺>}
func JSON(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 返回统一的401错误
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "unauthorized")
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Error(c, http.StatusNotFound, message)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "服务器内部错误"
	}
	Error(c, http.StatusInternalServerError, message)
}

// HandleError 按错误类型映射 HTTP 状态码
// 存储错误的细节只写日志，对调用方只给通用消息
func HandleError(c *gin.Context, err error) {
	var (
		validationErr *model.ValidationError
		conflictErr   *model.ConflictError
		notFoundErr   *model.NotFoundError
		authErr       *model.AuthError
		storageErr    *model.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Message)
	case errors.As(err, &conflictErr):
		Error(c, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		NotFound(c, notFoundErr.Message)
	case errors.As(err, &authErr):
		Unauthorized(c)
	case errors.As(err, &storageErr):
		log.Printf("[STORE] %s %s: %v", c.Request.Method, c.Request.URL.Path, storageErr)
		InternalServerError(c, "")
	default:
		log.Printf("[HTTP] 未分类错误 %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		InternalServerError(c, "")
	}
}
