package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"

	"github.com/gorilla/mux"
)

const maxUploadMemory = 8 << 20

// form holds request values as strings so the validator sees them as sent.
type form struct {
	values map[string]string
	files  map[string]*multipart.FileHeader
}

func (f *form) Get(key string) string {
	return f.values[key]
}

func (f *form) File(key string) *multipart.FileHeader {
	return f.files[key]
}

// parseForm accepts multipart, urlencoded and JSON bodies.
func parseForm(r *http.Request) (*form, error) {
	f := &form{values: map[string]string{}, files: map[string]*multipart.FileHeader{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, err
		}
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				f.values[key] = values[0]
			}
		}
		for key, headers := range r.MultipartForm.File {
			if len(headers) > 0 {
				f.files[key] = headers[0]
			}
		}

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for key := range r.PostForm {
			f.values[key] = r.PostForm.Get(key)
		}

	default:
		if r.Body == nil {
			return f, nil
		}
		var body map[string]interface{}
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return f, nil
			}
			return nil, err
		}
		for key, value := range body {
			switch v := value.(type) {
			case nil:
			case string:
				f.values[key] = v
			case json.Number:
				f.values[key] = v.String()
			case bool:
				f.values[key] = strconv.FormatBool(v)
			default:
				f.values[key] = fmt.Sprint(v)
			}
		}
	}

	return f, nil
}

// pathID reads the {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeValidationError reports field errors and returns true when err is one.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(w, verr.Errors)
		return true
	}
	return false
}
