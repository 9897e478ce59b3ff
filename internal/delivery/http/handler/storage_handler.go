package handler

import (
	"net/http"
	"path"
	"strings"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"

	"github.com/spf13/afero"
)

// StorageHandler serves uploaded files below prefix.
type StorageHandler struct {
	fs     *afero.HttpFs
	prefix string
}

func NewStorageHandler(fs afero.Fs, prefix string) *StorageHandler {
	return &StorageHandler{
		fs:     afero.NewHttpFs(fs),
		prefix: prefix,
	}
}

func (h *StorageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + strings.TrimPrefix(r.URL.Path, h.prefix))
	if name == "/" {
		response.NotFound(w, "File not found")
		return
	}

	file, err := h.fs.Open(name)
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		response.NotFound(w, "File not found")
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
