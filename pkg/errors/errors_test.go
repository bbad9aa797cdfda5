package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/koopa0/system-design/14-lobby-coordinator/pkg/errors"
)

// TestAppError_Is 測試以錯誤碼比對
func TestAppError_Is(t *testing.T) {
	err := apperrors.ErrRoomNotFound.WithDetails("room 42")

	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrAlreadyInRoom)
}

// TestWrap 測試錯誤包裝與解開
func TestWrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := apperrors.Wrap(cause, apperrors.ErrCodeInternal, "write lobby listing")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "connection reset")
}

// TestHelpers 測試分類輔助函式
func TestHelpers(t *testing.T) {
	assert.True(t, apperrors.IsNotFound(apperrors.ErrRoomNotFound))
	assert.True(t, apperrors.IsAlreadyExists(apperrors.ErrRoomAlreadyExists))
	assert.True(t, apperrors.IsInvalidInput(apperrors.ErrEmptyRoomName))
	assert.True(t, apperrors.IsInvalidInput(apperrors.ErrAlreadyInRoom))
	assert.True(t, apperrors.IsInvalidInput(apperrors.ErrBadHandshake))
	assert.True(t, apperrors.IsQuotaExceeded(apperrors.ErrRoomQuotaExceeded))

	// 包裝後仍可分類
	wrapped := fmt.Errorf("dispatch: %w", apperrors.ErrRoomNotFound)
	assert.True(t, apperrors.IsNotFound(wrapped))
	assert.False(t, apperrors.IsNotFound(stderrors.New("plain")))
}
