package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDay        = errors.New("invalid day of month")
	// ErrStoreUnavailable 儲存層 I/O 失敗，不重試，直接往上拋
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreUnavailable 包裝儲存層錯誤；已包裝過的錯誤原樣回傳
func StoreUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// ValidationError 欄位層級的驗證錯誤，回傳給呼叫端顯示
type ValidationError struct {
	FieldErrors map[string]string
	causes      []error
}

func NewValidationError() *ValidationError {
	return &ValidationError{FieldErrors: make(map[string]string)}
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(v.Fields(), ", ")
}

// Add 記錄一個欄位錯誤；cause 可為 nil
func (v *ValidationError) Add(field, message string, cause error) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
	if cause != nil {
		v.causes = append(v.causes, cause)
	}
}

func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Fields 依字母排序回傳出錯的欄位名稱
func (v *ValidationError) Fields() []string {
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Unwrap 讓 errors.Is 可以辨識 ErrInvalidInput 以及日期相關的 sentinel
func (v *ValidationError) Unwrap() []error {
	return append([]error{ErrInvalidInput}, v.causes...)
}

// AsValidationError 取出 *ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
