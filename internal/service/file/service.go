package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	MaxUploadSize = 5 << 20

	// Images wider or taller than this are scaled down before storing.
	maxImageDimension = 1600

	// Images whose header declares more pixels than this are refused before decoding.
	maxImagePixels = 40_000_000
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png, pdf allowed")
	ErrFileTooLarge    = errors.New("file exceeds the 5 MB limit")
	ErrEmptyFile       = errors.New("file is empty")
	ErrImageTooLarge   = errors.New("image dimensions exceed the 40 megapixel limit")
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

type UploadResponse struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type FileService interface {
	// Upload stores a file under the owner's folder with a generated name.
	Upload(ctx context.Context, ownerID string, file io.Reader, filename string) (UploadResponse, error)
	// Open streams a stored file. Only its owner may read it unless viewAll is set.
	Open(ctx context.Context, viewerID string, viewAll bool, key string) (io.ReadCloser, string, error)
	// DeleteFile removes a file the owner uploaded earlier.
	DeleteFile(ctx context.Context, ownerID string, key string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) Upload(ctx context.Context, ownerID string, file io.Reader, filename string) (UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return UploadResponse{}, ErrInvalidFileType
	}

	// Read one byte past the limit to detect oversized bodies.
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return UploadResponse{}, ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return UploadResponse{}, ErrFileTooLarge
	}

	if contentType != "application/pdf" {
		data, err = shrinkImage(data, contentType)
		if err != nil {
			return UploadResponse{}, err
		}
	}

	key := path.Join(ownerID, uuid.New().String()+ext)
	stored, err := s.storage.Upload(ctx, bytes.NewReader(data), key, contentType)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("failed to store upload: %w", err)
	}

	url, err := s.storage.GetURL(ctx, stored)
	if err != nil {
		return UploadResponse{}, err
	}

	return UploadResponse{
		Path:        stored,
		URL:         url,
		ContentType: contentType,
		Size:        len(data),
	}, nil
}

// ownedKey normalizes key and reports whether it lives under the owner's folder.
func ownedKey(ownerID, key string) (string, bool) {
	key = path.Clean(strings.TrimPrefix(key, "/"))
	return key, strings.HasPrefix(key, ownerID+"/")
}

func (s *fileServiceImpl) Open(ctx context.Context, viewerID string, viewAll bool, key string) (io.ReadCloser, string, error) {
	key, owned := ownedKey(viewerID, key)
	if !owned && !viewAll {
		return nil, "", storage.ErrFileNotFound
	}

	contentType, ok := contentTypes[strings.ToLower(filepath.Ext(key))]
	if !ok {
		return nil, "", storage.ErrFileNotFound
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return rc, contentType, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, ownerID string, key string) error {
	key, owned := ownedKey(ownerID, key)
	if !owned {
		return storage.ErrFileNotFound
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return storage.ErrFileNotFound
	}

	return s.storage.Delete(ctx, key)
}

// shrinkImage scales images larger than maxImageDimension down, keeping the
// aspect ratio and the original encoding. Smaller images are returned as is.
func shrinkImage(data []byte, contentType string) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidFileType
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, ErrImageTooLarge
	}
	if cfg.Width <= maxImageDimension && cfg.Height <= maxImageDimension {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidFileType
	}

	width, height := cfg.Width, cfg.Height
	if width >= height {
		height = height * maxImageDimension / width
		width = maxImageDimension
	} else {
		width = width * maxImageDimension / height
		height = maxImageDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
