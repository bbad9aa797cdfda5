// Package errors 提供應用程式錯誤處理
package errors

import (
	"errors"
	"fmt"
)

// 定義錯誤碼
const (
	// ErrCodeNotFound 資源未找到
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists 資源已存在
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeInvalidInput 無效輸入
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeQuotaExceeded 配額超限
	ErrCodeQuotaExceeded = "QUOTA_EXCEEDED"
	// ErrCodeInternal 內部錯誤
	ErrCodeInternal = "INTERNAL_ERROR"
)

// AppError 應用程式錯誤
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error 實現 error 介面
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 實現 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 實現 errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 創建新的應用程式錯誤
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包裝錯誤
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails 添加詳細資訊
//
// 回傳副本，預定義錯誤（套件層級共享）不被修改。
func (e *AppError) WithDetails(details string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// 預定義錯誤
var (
	// ErrRoomNotFound 房間未找到
	ErrRoomNotFound = New(ErrCodeNotFound, "room not found")

	// ErrRoomAlreadyExists 房間名稱已存在（嚴格模式）
	ErrRoomAlreadyExists = New(ErrCodeAlreadyExists, "room already exists")

	// ErrEmptyRoomName 房間名稱為空
	ErrEmptyRoomName = New(ErrCodeInvalidInput, "empty room name")

	// ErrAlreadyInRoom 連線已在房間內
	ErrAlreadyInRoom = New(ErrCodeInvalidInput, "already in a room")

	// ErrRoomQuotaExceeded 房間數量超限
	ErrRoomQuotaExceeded = New(ErrCodeQuotaExceeded, "room quota exceeded")

	// ErrBadHandshake 中繼資料握手格式錯誤
	ErrBadHandshake = New(ErrCodeInvalidInput, "malformed metadata handshake")
)

// IsNotFound 檢查是否為未找到錯誤
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsAlreadyExists 檢查是否為已存在錯誤
func IsAlreadyExists(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeAlreadyExists
	}
	return false
}

// IsInvalidInput 檢查是否為無效輸入錯誤
func IsInvalidInput(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeInvalidInput
	}
	return false
}

// IsQuotaExceeded 檢查是否為配額超限錯誤
func IsQuotaExceeded(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeQuotaExceeded
	}
	return false
}
