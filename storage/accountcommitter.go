package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/treecanopy/go-treecanopy/account"
)

var ErrETagRequired = errors.New("etag is required when updating an existing account")

// AccountContext carries one read snapshot of a tree account through a
// mutation. Data is the full account bytes: header, tree storage and canopy
// regions. The ETag pins the snapshot, CommitAccount refuses to write over a
// version other than the one that was read.
type AccountContext struct {
	TreeID       [32]byte
	BlobPath     string
	ETag         string
	Tags         map[string]string
	LastRead     time.Time
	LastModified time.Time
	Data         []byte

	// Creating is set when the account does not exist yet. The commit then
	// requires that no blob appears at the path in the interim.
	Creating bool
}

// AccountCommitter reads and writes tree account blobs.
type AccountCommitter struct {
	Log   logger.Logger
	Store ObjectStore
}

func NewAccountCommitter(log logger.Logger, store ObjectStore) *AccountCommitter {
	return &AccountCommitter{Log: log, Store: store}
}

// NewAccountContext assembles the byte image of a brand new tree account:
// marshaled header, zeroed tree storage region, and a zeroed canopy region
// sized for cachedDepth levels. The returned context is ready to commit.
func NewAccountContext(treeID [32]byte, h account.Header, cachedDepth uint32) (AccountContext, error) {
	headerData, err := h.MarshalBinary()
	if err != nil {
		return AccountContext{}, err
	}
	data := make([]byte, account.AccountSize(h.MaxDepth, h.MaxBufferSize, cachedDepth))
	copy(data, headerData)

	return AccountContext{
		TreeID:   treeID,
		BlobPath: AccountStoragePath(treeID),
		Data:     data,
		Creating: true,
	}, nil
}

// ReadAccount fetches the current account blob and pins its etag.
func (c *AccountCommitter) ReadAccount(ctx context.Context, treeID [32]byte) (AccountContext, error) {
	ac := AccountContext{
		TreeID:   treeID,
		BlobPath: AccountStoragePath(treeID),
	}

	rr, err := c.Store.Reader(ctx, ac.BlobPath, azblob.WithGetTags())
	if err != nil {
		return AccountContext{}, err
	}
	ac.Data, err = io.ReadAll(rr.Reader)
	if err != nil {
		return AccountContext{}, err
	}

	ac.Tags = rr.Tags
	if rr.ETag != nil {
		ac.ETag = *rr.ETag
	}
	if rr.LastModified != nil {
		ac.LastModified = *rr.LastModified
	}
	ac.LastRead = time.Now()

	c.Log.Debugf("read account %s: %d bytes, etag %s", ac.BlobPath, len(ac.Data), ac.ETag)
	return ac, nil
}

// CommitAccount writes the account bytes back to the store.
//
// CRITICAL: the etag match guards against racy updates, and the none-match
// option guards creation, so a commit can never overwrite state it has not
// read. The host's all-or-nothing instruction semantics depend on this.
func (c *AccountCommitter) CommitAccount(ctx context.Context, ac *AccountContext) (*azblob.WriteResponse, error) {
	opts := []azblob.Option{azblob.WithTags(ac.Tags)}
	if ac.ETag != "" {
		opts = append(opts, azblob.WithEtagMatch(ac.ETag))
	} else if !ac.Creating {
		return nil, ErrETagRequired
	}
	if ac.Creating {
		// fail without modifying anything if the blob already exists
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	}

	wr, err := c.Store.Put(ctx, ac.BlobPath, azblob.NewBytesReaderCloser(ac.Data), opts...)
	if err != nil {
		return wr, err
	}
	c.Log.Debugf("committed account %s: %d bytes", ac.BlobPath, len(ac.Data))
	return wr, nil
}
