package sheet

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/blobstore"
)

const maxFormMemory = 32 << 20

func isMultipart(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return strings.HasPrefix(mediaType, "multipart/")
}

// saveUpload forwards the optional "file" part to the blob store and
// returns its public URL, or "" when no file was attached.
func saveUpload(r *http.Request, blobs blobstore.Store) (string, error) {
	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", internal.NewValidationError("invalid file upload", internal.ErrCodeValidationFailed)
	}
	defer file.Close()

	return blobs.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
}

func parseRecordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
