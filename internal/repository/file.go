package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filedepot/filedepot-go/internal/model"
)

var ErrFileNotFound = errors.New("file not found")

// ListPageSize is the fixed page length for file listings.
const ListPageSize = 20

// FileRepository handles file metadata persistence against the files
// collection.
type FileRepository struct {
	col *mongo.Collection
}

// NewFileRepository creates a new FileRepository.
func NewFileRepository(m *Mongo) *FileRepository {
	return &FileRepository{col: m.db.Collection("files")}
}

// Create inserts a new file document and sets the generated ID.
func (r *FileRepository) Create(ctx context.Context, f *model.File) error {
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}
	f.ID = id
	return nil
}

// GetByID retrieves a file by the hex form of its ID, regardless of owner.
// Visibility rules are applied by the caller.
func (r *FileRepository) GetByID(ctx context.Context, id string) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrFileNotFound
	}

	f := &model.File{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// GetOwned retrieves a file only if userID owns it. An existing file owned
// by someone else is indistinguishable from an absent one.
func (r *FileRepository) GetOwned(ctx context.Context, id, userID string) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrFileNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrFileNotFound
	}

	f := &model.File{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "userId": uid}).Decode(f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// List returns one page of the files owned by userID under parentID.
func (r *FileRepository) List(ctx context.Context, userID, parentID string, page int64) ([]model.File, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrFileNotFound
	}
	if page < 0 {
		page = 0
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "userId", Value: uid},
			{Key: "parentId", Value: parentID},
		}}},
		{{Key: "$skip", Value: page * ListPageSize}},
		{{Key: "$limit", Value: int64(ListPageSize)}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	files := []model.File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// SetPublic toggles the isPublic flag on a file owned by userID and returns
// the updated document. Not-found and not-owner collapse into ErrFileNotFound.
func (r *FileRepository) SetPublic(ctx context.Context, id, userID string, public bool) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrFileNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrFileNotFound
	}

	filter := bson.M{"_id": oid, "userId": uid}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"isPublic": public}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrFileNotFound
	}

	f := &model.File{}
	if err := r.col.FindOne(ctx, filter).Decode(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Count returns the number of file documents.
func (r *FileRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}
