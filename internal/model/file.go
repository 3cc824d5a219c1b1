package model

import (
	"encoding/json"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RootFolderID is the sentinel parent value meaning "no parent". It is not
// the id of a real document.
const RootFolderID = "0"

// Entry types accepted on upload.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// File represents a document in the files collection. LocalPath is set only
// for file and image entries and never leaves the server.
type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	IsPublic  bool               `bson:"isPublic"`
	ParentID  string             `bson:"parentId"`
	LocalPath string             `bson:"localPath,omitempty"`
}

// FlexibleID accepts a JSON string or number. Clients of the original API
// send the root parent as the number 0 and real parents as hex strings.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(strconv.FormatInt(n, 10))
	return nil
}

// UploadRequest represents a file/folder creation request.
type UploadRequest struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	ParentID FlexibleID `json:"parentId"`
	IsPublic bool       `json:"isPublic"`
	Data     string     `json:"data"` // base64 encoded, empty for folders
}

// FileResponse represents a file record in API responses.
type FileResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

// NewFileResponse maps a stored file to its API shape.
func NewFileResponse(f *File) FileResponse {
	return FileResponse{
		ID:       f.ID.Hex(),
		UserID:   f.UserID.Hex(),
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: f.ParentID,
	}
}

// StatusResponse reports backing store liveness.
type StatusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// StatsResponse reports collection document counts.
type StatsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}
