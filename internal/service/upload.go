package service

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxUploadSize is the upper bound for profile pictures (5 MiB).
const maxUploadSize = 5 << 20

// EnsureUploadDir creates the uploads directory if it does not exist yet.
// A failure is logged and not fatal; uploads then fail individually.
func (s *Server) EnsureUploadDir() {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		log.Error("could not create uploads directory: ", err)
	}
}

// saveProfilePicture runs the file intake on the optional profilePicture form
// field. An absent file (or a request that is no multipart form at all) is
// not an error and yields a nil reference. On rejection the HTTP error
// response has already been written and ok is false.
func (s *Server) saveProfilePicture(c *gin.Context) (picture *string, ok bool) {
	file, err := c.FormFile("profilePicture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
		return nil, false
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File upload error: Only images allowed"})
		return nil, false
	}
	if file.Size > maxUploadSize {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File upload error: File too large"})
		return nil, false
	}

	name := uploadFileName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.uploadDir, name)); err != nil {
		log.Error("file save error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "File upload error: " + err.Error()})
		return nil, false
	}
	return &name, true
}

// uploadFileName builds a collision-resistant name for a stored profile
// picture, keeping the original file extension. The name doubles as the
// public download path below /uploads/.
func uploadFileName(original string) string {
	return fmt.Sprintf("patient-%d-%d%s",
		time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(original))
}
