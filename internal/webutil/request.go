package webutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go_4_elearning/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// リクエストボディの上限 (1MB)
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed.", "", model.ErrInvalidInput)
	}
	return nil
}

// DecodeAndValidate はデコードとバリデーションをまとめて行う。
// バリデーションエラーは最初の1件を翻訳済みメッセージで返す
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(w, r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			return model.NewAppError("VALIDATION_ERROR", firstErr.Translate(Trans), firstErr.Field(), model.ErrInvalidInput)
		}
		return err
	}
	return nil
}

// URLParamUint はパスパラメータを正の整数として取り出す
func URLParamUint(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, model.NewAppError("INVALID_URL_PARAM", name+" must be a positive integer.", name, model.ErrInvalidInput)
	}
	return uint(id), nil
}
