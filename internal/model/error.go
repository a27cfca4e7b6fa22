// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
	ErrRetryable      = errors.New("temporarily unavailable, retry")
)

// ErrorDetail はクライアントに返すエラーの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError は機械判定用のコードと人が読むメッセージを持つエラー。
// Err にはステータス判定用のセンチネルエラーを入れる。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code は err が AppError ならそのコードを返す
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail.Code
	}
	return ""
}
