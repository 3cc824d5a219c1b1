// Package worker contains the background job processors consumed by the
// queue server: thumbnail generation for uploaded images and welcome mail
// for new accounts.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"

	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/queue"
	"github.com/filedepot/filedepot-go/internal/repository"
)

// thumbnailWidths are generated for every image upload, written beside the
// original as <path>_<width>.
var thumbnailWidths = []int{500, 250, 100}

var (
	ErrMissingFileID = errors.New("missing fileId")
	ErrMissingUserID = errors.New("missing userId")
)

// FileStore is the owner-scoped lookup the thumbnail processor needs.
type FileStore interface {
	GetOwned(ctx context.Context, id, userID string) (*model.File, error)
}

// ThumbnailProcessor consumes thumbnail jobs.
type ThumbnailProcessor struct {
	files FileStore
}

// NewThumbnailProcessor creates a new ThumbnailProcessor.
func NewThumbnailProcessor(files FileStore) *ThumbnailProcessor {
	return &ThumbnailProcessor{files: files}
}

// Process handles one thumbnail job. An incomplete payload or a file the
// given user does not own is fatal; the job is acknowledged only after all
// widths have been written.
func (p *ThumbnailProcessor) Process(ctx context.Context, payload []byte) error {
	var job queue.ThumbnailPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		return queue.Fatal(err)
	}
	if job.FileID == "" {
		return queue.Fatal(ErrMissingFileID)
	}
	if job.UserID == "" {
		return queue.Fatal(ErrMissingUserID)
	}

	file, err := p.files.GetOwned(ctx, job.FileID, job.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return queue.Fatal(err)
		}
		return err
	}

	src, format, err := decodeImage(file.LocalPath)
	if err != nil {
		return queue.Fatal(fmt.Errorf("decoding %s: %w", file.LocalPath, err))
	}

	for _, width := range thumbnailWidths {
		thumb := imaging.Resize(src, width, 0, imaging.Lanczos)
		out := fmt.Sprintf("%s_%d", file.LocalPath, width)
		if err := writeImage(out, thumb, format); err != nil {
			return err
		}
	}

	slog.Info("thumbnails generated", "file", file.ID.Hex(), "widths", thumbnailWidths)
	return nil
}

// decodeImage loads the stored bytes and reports their format. Stored paths
// carry no extension, so the format comes from the content.
func decodeImage(path string) (image.Image, imaging.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	img, name, err := image.Decode(f)
	if err != nil {
		return nil, 0, err
	}

	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, 0, err
	}
	return img, format, nil
}

func writeImage(path string, img image.Image, format imaging.Format) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imaging.Encode(out, img, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
