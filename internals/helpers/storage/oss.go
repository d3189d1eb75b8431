// internals/helpers/storage/oss.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"campus_events_backend/internals/configs"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

/* =======================================================================
   OSS store
======================================================================= */

type OSSStore struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string // optional CDN base
	Prefix     string // optional key prefix, e.g. "campus-hub"
}

func NewOSSStoreFromEnv() (*OSSStore, error) {
	endpoint := strings.TrimSpace(configs.GetEnv("OSS_ENDPOINT"))
	ak := strings.TrimSpace(configs.GetEnv("OSS_ACCESS_KEY_ID"))
	sk := strings.TrimSpace(configs.GetEnv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(configs.GetEnv("OSS_BUCKET"))
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == http.StatusForbidden {
			log.Printf("[OSS] warn: skip location check (bucket=%s): %s", bucketName, se.Code)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSStore{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: strings.TrimRight(configs.GetEnv("OSS_PUBLIC_BASE"), "/"),
		Prefix:     strings.Trim(configs.GetEnv("OSS_PREFIX"), "/"),
	}, nil
}

func (s *OSSStore) Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	data, err := encodeUpload(fh)
	if err != nil {
		return "", err
	}
	key := ObjectName(folder, fh.Filename)
	if s.Prefix != "" {
		key = s.Prefix + "/" + key
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("oss put: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *OSSStore) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return nil
	}
	err := s.Bucket.DeleteObject(key, oss.WithContext(ctx))
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

func (s *OSSStore) PublicURL(key string) string {
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSStore) keyFromURL(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}
	base := s.PublicURL("")
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	key := strings.TrimPrefix(url, base)
	return key, key != ""
}

func isNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusNotFound || se.Code == "NoSuchKey"
	}
	return false
}
