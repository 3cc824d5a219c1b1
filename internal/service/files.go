package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/queue"
	"github.com/filedepot/filedepot-go/internal/repository"
)

var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing type")
	ErrMissingData     = errors.New("missing data")
	ErrInvalidData     = errors.New("data is not valid base64")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrFileNotFound    = errors.New("file not found")
	ErrFolderNoContent = errors.New("a folder doesn't have content")
	ErrInvalidSize     = errors.New("invalid thumbnail size")
)

// thumbnailSizes are the accepted size variants for ReadContent.
var thumbnailSizes = map[string]bool{"500": true, "250": true, "100": true}

// FileStore is the file metadata persistence surface.
type FileStore interface {
	Create(ctx context.Context, f *model.File) error
	GetByID(ctx context.Context, id string) (*model.File, error)
	GetOwned(ctx context.Context, id, userID string) (*model.File, error)
	List(ctx context.Context, userID, parentID string, page int64) ([]model.File, error)
	SetPublic(ctx context.Context, id, userID string, public bool) (*model.File, error)
	Count(ctx context.Context) (int64, error)
}

// FilesService orchestrates uploads: validation, content persistence,
// metadata recording and thumbnail job dispatch. It also owns the reads
// that share the owner-or-public visibility rule.
type FilesService struct {
	files FileStore
	jobs  Jobs
	root  string
}

// NewFilesService creates a new FilesService writing content under
// storageRoot.
func NewFilesService(files FileStore, jobs Jobs, storageRoot string) *FilesService {
	return &FilesService{files: files, jobs: jobs, root: storageRoot}
}

// CreateEntry validates and persists a new folder, file or image owned by
// userID. Folders record metadata only; files and images also write their
// decoded content to a uniquely named path under the storage root. Image
// uploads additionally enqueue exactly one thumbnail job.
func (s *FilesService) CreateEntry(ctx context.Context, userID string, req model.UploadRequest) (*model.File, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	switch req.Type {
	case model.TypeFolder, model.TypeFile, model.TypeImage:
	default:
		return nil, ErrMissingType
	}
	if req.Data == "" && req.Type != model.TypeFolder {
		return nil, ErrMissingData
	}

	parentID := string(req.ParentID)
	if parentID == "" {
		parentID = model.RootFolderID
	}
	if parentID != model.RootFolderID {
		parent, err := s.files.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, repository.ErrFileNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.Type != model.TypeFolder {
			return nil, ErrParentNotFolder
		}
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	f := &model.File{
		UserID:   uid,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: parentID,
	}

	if req.Type != model.TypeFolder {
		content, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, ErrInvalidData
		}
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			return nil, err
		}
		path := filepath.Join(s.root, uuid.NewString())
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, err
		}
		f.LocalPath = path
	}

	if err := s.files.Create(ctx, f); err != nil {
		// Don't leave orphan bytes behind a failed metadata write.
		if f.LocalPath != "" {
			os.Remove(f.LocalPath)
		}
		return nil, err
	}

	if f.Type == model.TypeImage {
		err := s.jobs.EnqueueThumbnail(ctx, queue.ThumbnailPayload{
			UserID: userID,
			FileID: f.ID.Hex(),
		})
		if err != nil {
			slog.Warn("failed to enqueue thumbnail job", "file", f.ID.Hex(), "error", err)
		}
	}

	return f, nil
}

// GetByID returns a file visible to requesterID: its own files and anyone's
// public files. Everything else is ErrFileNotFound.
func (s *FilesService) GetByID(ctx context.Context, id, requesterID string) (*model.File, error) {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	if !f.IsPublic && f.UserID.Hex() != requesterID {
		return nil, ErrFileNotFound
	}
	return f, nil
}

// List returns one fixed-size page of requesterID's own files under
// parentID (the root sentinel when empty).
func (s *FilesService) List(ctx context.Context, requesterID, parentID string, page int64) ([]model.File, error) {
	if parentID == "" {
		parentID = model.RootFolderID
	}
	if page < 0 {
		page = 0
	}
	return s.files.List(ctx, requesterID, parentID, page)
}

// SetPublic toggles visibility. Only the owner may toggle; a non-owner gets
// the same ErrFileNotFound as a missing file.
func (s *FilesService) SetPublic(ctx context.Context, id, requesterID string, public bool) (*model.File, error) {
	f, err := s.files.SetPublic(ctx, id, requesterID, public)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// ReadContent resolves the on-disk path serving a file's bytes, or the
// `<path>_<size>` thumbnail variant when size is given. Folders have no
// content; private files are invisible to non-owners; a record whose bytes
// are missing from disk reads as not found.
func (s *FilesService) ReadContent(ctx context.Context, id, requesterID, size string) (*model.File, string, error) {
	f, err := s.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, "", err
	}
	if f.Type == model.TypeFolder {
		return nil, "", ErrFolderNoContent
	}

	path := f.LocalPath
	if size != "" {
		if !thumbnailSizes[size] {
			return nil, "", ErrInvalidSize
		}
		path = path + "_" + size
	}

	if _, err := os.Stat(path); err != nil {
		return nil, "", ErrFileNotFound
	}
	return f, path, nil
}
