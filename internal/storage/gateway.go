// Package storage abstracts the remote asset host. Callers upload a
// local file and get back a stable object id plus a public URL; the id
// is what a later delete request needs.
package storage

import "context"

type Asset struct {
	URL string
	ID  string
}

type Gateway interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, fileID string) error
}
