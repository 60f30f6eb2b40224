package storage

import "io"

type ObjectStorage interface {
	Upload(key string, reader io.Reader) (string, error)
	Delete(key string) error
}
