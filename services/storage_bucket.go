package services

import (
	"context"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// StorageBucket wraps the firebase bucket holding user-uploaded post
// images. The backend never reads blob contents; it only checks that a
// client-supplied blob name refers to a real upload.
type StorageBucket struct {
	*storage.BucketHandle
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &StorageBucket{bucketHandle}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	handle := sb.Object(blobName)
	if _, err := handle.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
