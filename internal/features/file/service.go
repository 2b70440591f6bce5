package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"casa360/internal/config"
	"casa360/pkg/utils"

	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

var (
	ErrForbidden = errors.New("only the uploader or an admin can delete a file")
	ErrTooLarge  = fmt.Errorf("file too large (max %dMB)", maxUploadSize>>20)
)

type FileService interface {
	List(ctx context.Context, familyID string) ([]StoredFile, error)
	Get(ctx context.Context, familyID, id string) (*StoredFile, error)
	// Fetch loads a file without family scoping. Only for download links whose
	// HMAC signature has already been verified.
	Fetch(ctx context.Context, id string) (*StoredFile, error)
	Save(ctx context.Context, f *StoredFile) error
	// Delete removes metadata and the bytes on disk. Non-admins can only
	// delete their own uploads.
	Delete(ctx context.Context, familyID, id, userID string, isAdmin bool) error
	// SignedURL builds an expiring download link for the file.
	SignedURL(f *StoredFile) string
	ValidateUpload(size int64) error
}

type FileServiceImpl struct {
	repo     FileRepository
	logger   *zap.Logger
	lifetime time.Duration
}

func NewFileService(repo FileRepository, logger *zap.Logger, cfg *config.Config) FileService {
	return &FileServiceImpl{
		repo:     repo,
		logger:   logger,
		lifetime: cfg.SignedURLLifetime,
	}
}

func (s *FileServiceImpl) List(ctx context.Context, familyID string) ([]StoredFile, error) {
	files, err := s.repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i].DownloadURL = s.SignedURL(&files[i])
	}
	return files, nil
}

func (s *FileServiceImpl) Get(ctx context.Context, familyID, id string) (*StoredFile, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	f.DownloadURL = s.SignedURL(f)
	return f, nil
}

func (s *FileServiceImpl) Fetch(ctx context.Context, id string) (*StoredFile, error) {
	return s.repo.Get(ctx, id)
}

func (s *FileServiceImpl) Save(ctx context.Context, f *StoredFile) error {
	if err := s.repo.Create(ctx, f); err != nil {
		return err
	}
	f.DownloadURL = s.SignedURL(f)
	return nil
}

func (s *FileServiceImpl) Delete(ctx context.Context, familyID, id, userID string, isAdmin bool) error {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if f.FamilyID.Hex() != familyID {
		return ErrNotFound
	}
	if !isAdmin && f.UploadedBy.Hex() != userID {
		return ErrForbidden
	}

	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file from disk: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("file deleted",
		zap.String("fileId", id),
		zap.String("userId", userID))
	return nil
}

func (s *FileServiceImpl) SignedURL(f *StoredFile) string {
	expires := time.Now().Add(s.lifetime)
	sig := utils.SignResource(f.ID.Hex(), expires)
	return fmt.Sprintf("/api/files/download/%s?expires=%d&sig=%s", f.ID.Hex(), expires.Unix(), sig)
}

func (s *FileServiceImpl) ValidateUpload(size int64) error {
	if size > maxUploadSize {
		return ErrTooLarge
	}
	return nil
}
