// Package storage persists concurrent merkle tree accounts as blobs. One blob
// holds one account. All writes are guarded by etags so that the
// read-modify-write cycle an instruction performs can never silently clobber
// a concurrent commit; a lost race surfaces as a store error and the whole
// mutation is retried from a fresh read.
package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
)

const (
	V1AccountPrefix      = "v1/trees"
	V1AccountBlobNameFmt = "%s.account"
)

// AccountStoragePath returns the blob path for a tree account.
func AccountStoragePath(treeID [32]byte) string {
	return fmt.Sprintf("%s/"+V1AccountBlobNameFmt, V1AccountPrefix, hex.EncodeToString(treeID[:]))
}

// ObjectStore is the narrow surface the committer needs from a blob store. It
// is satisfied by azblob.Storer.
type ObjectStore interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)

	Put(
		ctx context.Context,
		identity string,
		source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)
}
