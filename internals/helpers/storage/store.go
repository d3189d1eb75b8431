// internals/helpers/storage/store.go
package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"campus_events_backend/internals/configs"
	"campus_events_backend/internals/constants"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// ImageStore owns uploaded image files. The returned URL is what rows reference.
type ImageStore interface {
	Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
	// Delete must treat an already-absent object as success.
	Delete(ctx context.Context, url string) error
}

// CheckImageHeader returns a user-facing message when fh is not an acceptable image.
func CheckImageHeader(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	if !constants.IsImageUpload(fh.Filename, fh.Header.Get("Content-Type")) {
		return "Only image files are allowed."
	}
	if fh.Size > constants.MaxImageUploadBytes {
		return "Image must be 5MB or smaller."
	}
	return ""
}

// ObjectName builds "folder/YYYYMMDD-uuid-slug.webp".
func ObjectName(folder, originalFilename string) string {
	base := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))
	name := fmt.Sprintf("%s-%s-%s.webp",
		time.Now().UTC().Format("20060102"),
		uuid.New().String(),
		fileSlug(base, 40),
	)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// fileSlug keeps ASCII letters and digits of name, folding accents and
// collapsing everything else into single hyphens. Never empty.
func fileSlug(name string, maxLen int) string {
	var b strings.Builder
	hyphen := false
	for _, r := range norm.NFD.String(strings.ToLower(name)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r >= utf8.RuneSelf || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			hyphen = true
			continue
		}
		if hyphen && b.Len() > 0 {
			if b.Len()+1 >= maxLen {
				break
			}
			b.WriteByte('-')
		}
		hyphen = false
		if b.Len() >= maxLen {
			break
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}

func encodeUpload(fh *multipart.FileHeader) ([]byte, error) {
	if msg := CheckImageHeader(fh); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, msg)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return ConvertToWebP(src, DefaultWebPOptions())
}

// NewImageStoreFromEnv picks object storage when OSS_* is configured, else local disk.
func NewImageStoreFromEnv() ImageStore {
	if configs.GetEnv("OSS_BUCKET") != "" {
		s, err := NewOSSStoreFromEnv()
		if err == nil {
			log.Printf("✅ Image storage: OSS bucket %s", s.BucketName)
			return s
		}
		log.Printf("[ERROR] OSS storage unavailable, falling back to disk: %v", err)
	}
	log.Printf("✅ Image storage: local dir %s", configs.UploadDir)
	return NewLocalStore(configs.UploadDir, configs.UploadURLPrefix)
}
