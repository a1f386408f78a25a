package model

import "fmt"

// ValidationError 调用方输入缺失或格式错误（HTTP 400）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError 创建输入校验错误
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError 违反唯一性约束（HTTP 409）
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError 创建唯一性冲突错误
func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 引用的账户/片单/条目不存在（HTTP 404）
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// AuthError 令牌缺失/无效/过期（HTTP 401，响应对调用方统一）
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StorageError 持久层失败（HTTP 500，细节只写日志不外传）
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("存储操作 %s 失败: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError 包装持久层错误
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
