package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"

	"yadoya/shared/failure"
	"yadoya/shared/locale"
)

var validate *val.Validate

// Image formats accepted for room uploads.
var allowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".avif"}

func registerLocaleValidation(field val.FieldLevel) bool {
	code, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if code == "" {
		return true
	}

	return locale.IsSupported(code)
}

func registerImageExtValidation(field val.FieldLevel) bool {
	var name string

	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		name = file.Filename
	} else if str, ok := field.Field().Interface().(string); ok {
		name = str
	}

	if name == "" {
		return false
	}

	ext := strings.ToLower(filepath.Ext(name))

	return slices.Contains(allowedImageExtensions, ext)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("locale", registerLocaleValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("imageext", registerImageExtValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("maxfilesize", registerFileSizeValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
