package service

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/filedepot/filedepot-go/internal/model"
)

func newTestFilesService(t *testing.T) (*FilesService, *fakeFileStore, *fakeJobs) {
	t.Helper()
	files := newFakeFileStore()
	jobs := &fakeJobs{}
	return NewFilesService(files, jobs, t.TempDir()), files, jobs
}

func testOwner() string {
	return primitive.NewObjectID().Hex()
}

func TestCreateEntry_ValidationOrder(t *testing.T) {
	svc, _, _ := newTestFilesService(t)
	owner := testOwner()
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Type: model.TypeFile, Data: "aGk="})
	if !errors.Is(err, ErrMissingName) {
		t.Errorf("expected ErrMissingName, got %v", err)
	}

	_, err = svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "x", Type: "weird", Data: "aGk="})
	if !errors.Is(err, ErrMissingType) {
		t.Errorf("expected ErrMissingType, got %v", err)
	}

	_, err = svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "x", Type: model.TypeFile})
	if !errors.Is(err, ErrMissingData) {
		t.Errorf("expected ErrMissingData, got %v", err)
	}
}

func TestCreateEntry_ParentChecks(t *testing.T) {
	svc, files, _ := newTestFilesService(t)
	owner := testOwner()
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, owner, model.UploadRequest{
		Name: "x", Type: model.TypeFile, Data: "aGk=",
		ParentID: model.FlexibleID(primitive.NewObjectID().Hex()),
	})
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}

	// A non-folder parent is rejected and nothing is persisted.
	plain, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "doc", Type: model.TypeFile, Data: "aGk="})
	if err != nil {
		t.Fatalf("seed upload failed: %v", err)
	}
	before, _ := files.Count(ctx)

	_, err = svc.CreateEntry(ctx, owner, model.UploadRequest{
		Name: "y", Type: model.TypeFile, Data: "aGk=",
		ParentID: model.FlexibleID(plain.ID.Hex()),
	})
	if !errors.Is(err, ErrParentNotFolder) {
		t.Errorf("expected ErrParentNotFolder, got %v", err)
	}
	if after, _ := files.Count(ctx); after != before {
		t.Error("rejected upload must not be persisted")
	}
}

func TestCreateEntry_FolderWritesNothing(t *testing.T) {
	files := newFakeFileStore()
	jobs := &fakeJobs{}
	root := t.TempDir()
	svc := NewFilesService(files, jobs, root)
	owner := testOwner()

	f, err := svc.CreateEntry(context.Background(), owner, model.UploadRequest{
		Name: "docs", Type: model.TypeFolder,
	})
	if err != nil {
		t.Fatalf("folder upload failed: %v", err)
	}
	if f.LocalPath != "" {
		t.Error("folders must not record a local path")
	}
	if f.ParentID != model.RootFolderID {
		t.Errorf("parent = %s, want root sentinel", f.ParentID)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("reading storage root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("folder upload wrote %d file(s) to disk", len(entries))
	}
}

func TestCreateEntry_FileWritesContent(t *testing.T) {
	svc, _, jobs := newTestFilesService(t)
	owner := testOwner()
	content := []byte("Hello Webstack!\n")

	f, err := svc.CreateEntry(context.Background(), owner, model.UploadRequest{
		Name: "hello.txt",
		Type: model.TypeFile,
		Data: base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if f.ID.IsZero() {
		t.Error("expected a generated id")
	}
	if f.LocalPath == "" {
		t.Fatal("expected a local path")
	}

	got, err := os.ReadFile(f.LocalPath)
	if err != nil {
		t.Fatalf("reading stored content: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("stored content = %q, want %q", got, content)
	}

	if len(jobs.thumbnails) != 0 {
		t.Error("plain file upload must not enqueue a thumbnail job")
	}
}

func TestCreateEntry_ImageEnqueuesOneThumbnailJob(t *testing.T) {
	svc, _, jobs := newTestFilesService(t)
	owner := testOwner()

	f, err := svc.CreateEntry(context.Background(), owner, model.UploadRequest{
		Name: "pic.png",
		Type: model.TypeImage,
		Data: base64.StdEncoding.EncodeToString([]byte("not-really-a-png")),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(jobs.thumbnails) != 1 {
		t.Fatalf("thumbnail jobs = %d, want 1", len(jobs.thumbnails))
	}
	job := jobs.thumbnails[0]
	if job.FileID != f.ID.Hex() || job.UserID != owner {
		t.Errorf("job payload = %+v, want file %s owner %s", job, f.ID.Hex(), owner)
	}
}

func TestCreateEntry_InvalidBase64(t *testing.T) {
	svc, _, _ := newTestFilesService(t)

	_, err := svc.CreateEntry(context.Background(), testOwner(), model.UploadRequest{
		Name: "x", Type: model.TypeFile, Data: "!!!not base64!!!",
	})
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
}

func TestGetByID_Visibility(t *testing.T) {
	svc, _, _ := newTestFilesService(t)
	owner := testOwner()
	stranger := testOwner()
	ctx := context.Background()

	f, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "private.txt", Type: model.TypeFile, Data: "aGk="})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if _, err := svc.GetByID(ctx, f.ID.Hex(), owner); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, f.ID.Hex(), stranger); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("stranger read: expected ErrFileNotFound, got %v", err)
	}
	if _, err := svc.GetByID(ctx, primitive.NewObjectID().Hex(), owner); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing id: expected ErrFileNotFound, got %v", err)
	}
}

func TestSetPublic_TogglesVisibility(t *testing.T) {
	svc, _, _ := newTestFilesService(t)
	owner := testOwner()
	stranger := testOwner()
	ctx := context.Background()

	f, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "shared.txt", Type: model.TypeFile, Data: "aGk="})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// Only the owner may toggle; non-owners see not-found, not forbidden.
	if _, err := svc.SetPublic(ctx, f.ID.Hex(), stranger, true); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("stranger publish: expected ErrFileNotFound, got %v", err)
	}

	published, err := svc.SetPublic(ctx, f.ID.Hex(), owner, true)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !published.IsPublic {
		t.Error("expected isPublic true after publish")
	}
	if _, err := svc.GetByID(ctx, f.ID.Hex(), stranger); err != nil {
		t.Errorf("public file should be visible to anyone, got %v", err)
	}

	if _, err := svc.SetPublic(ctx, f.ID.Hex(), owner, false); err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, f.ID.Hex(), stranger); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("unpublished file: expected ErrFileNotFound, got %v", err)
	}
}

func TestList_ScopedToOwnerAndParent(t *testing.T) {
	svc, _, _ := newTestFilesService(t)
	owner := testOwner()
	other := testOwner()
	ctx := context.Background()

	folder, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "docs", Type: model.TypeFolder})
	if err != nil {
		t.Fatalf("folder upload failed: %v", err)
	}
	if _, err := svc.CreateEntry(ctx, owner, model.UploadRequest{
		Name: "inside.txt", Type: model.TypeFile, Data: "aGk=",
		ParentID: model.FlexibleID(folder.ID.Hex()),
	}); err != nil {
		t.Fatalf("child upload failed: %v", err)
	}
	if _, err := svc.CreateEntry(ctx, other, model.UploadRequest{Name: "theirs.txt", Type: model.TypeFile, Data: "aGk="}); err != nil {
		t.Fatalf("other upload failed: %v", err)
	}

	root, err := svc.List(ctx, owner, "", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(root) != 1 || root[0].Name != "docs" {
		t.Errorf("root listing = %+v, want only the folder", root)
	}

	inside, err := svc.List(ctx, owner, folder.ID.Hex(), 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(inside) != 1 || inside[0].Name != "inside.txt" {
		t.Errorf("folder listing = %+v, want only the child", inside)
	}
}

func TestReadContent(t *testing.T) {
	svc, _, _ := newTestFilesService(t)
	owner := testOwner()
	stranger := testOwner()
	ctx := context.Background()

	folder, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "docs", Type: model.TypeFolder})
	if err != nil {
		t.Fatalf("folder upload failed: %v", err)
	}
	if _, _, err := svc.ReadContent(ctx, folder.ID.Hex(), owner, ""); !errors.Is(err, ErrFolderNoContent) {
		t.Errorf("folder content: expected ErrFolderNoContent, got %v", err)
	}

	f, err := svc.CreateEntry(ctx, owner, model.UploadRequest{Name: "hello.txt", Type: model.TypeFile, Data: "aGk="})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	_, path, err := svc.ReadContent(ctx, f.ID.Hex(), owner, "")
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if path != f.LocalPath {
		t.Errorf("path = %s, want %s", path, f.LocalPath)
	}

	if _, _, err := svc.ReadContent(ctx, f.ID.Hex(), stranger, ""); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("stranger read: expected ErrFileNotFound, got %v", err)
	}

	if _, _, err := svc.ReadContent(ctx, f.ID.Hex(), owner, "300"); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("bad size: expected ErrInvalidSize, got %v", err)
	}

	// The variant path only resolves once the thumbnail exists on disk.
	if _, _, err := svc.ReadContent(ctx, f.ID.Hex(), owner, "100"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing thumbnail: expected ErrFileNotFound, got %v", err)
	}
	if err := os.WriteFile(f.LocalPath+"_100", []byte("thumb"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, path, err = svc.ReadContent(ctx, f.ID.Hex(), owner, "100")
	if err != nil {
		t.Fatalf("thumbnail read failed: %v", err)
	}
	if filepath.Base(path) != filepath.Base(f.LocalPath)+"_100" {
		t.Errorf("variant path = %s, want %s_100", path, f.LocalPath)
	}
}
