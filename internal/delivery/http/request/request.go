package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxRequestBodySize = 1 << 20 // 1MB

// DecodeJSON decodes a JSON request body into the provided struct with a
// size limit
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// GetUUIDParam extracts a UUID parameter from the URL
func GetUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return uuid.Nil, fmt.Errorf("missing parameter: %s", key)
	}

	id, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid UUID: %w", err)
	}

	return id, nil
}

// MultipartFile holds an uploaded file's original name and raw bytes
type MultipartFile struct {
	Filename string
	Data     []byte
}

// GetMultipartFile reads the named file part from a multipart request. A
// part that is absent returns (nil, nil): optional uploads are the normal
// case for product updates.
func GetMultipartFile(r *http.Request, field string, maxSize int64) (*MultipartFile, error) {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read file part %q: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read file part %q: %w", field, err)
	}

	return &MultipartFile{
		Filename: header.Filename,
		Data:     data,
	}, nil
}

// DecodeMultipartJSON decodes the named form value of a multipart request
// as JSON into v
func DecodeMultipartJSON(r *http.Request, field string, maxSize int64, v interface{}) error {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return fmt.Errorf("failed to parse multipart form: %w", err)
	}

	value := r.FormValue(field)
	if value == "" {
		return fmt.Errorf("missing form field: %s", field)
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("failed to decode JSON form field %q: %w", field, err)
	}

	return nil
}
