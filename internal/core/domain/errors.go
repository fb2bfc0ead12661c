package domain

import "errors"

// ErrAssetNotFound is an error thrown when a media asset is not found
var ErrAssetNotFound = errors.New("media asset not found")

// ErrInvalidSessionID is an error thrown when a session id is malformed
var ErrInvalidSessionID = errors.New("invalid session id")

// ErrInvalidMediaKind is an error thrown when the media kind is unsupported
var ErrInvalidMediaKind = errors.New("invalid media kind")

// ErrChunkExists is an error thrown when a chunk index was already written
var ErrChunkExists = errors.New("chunk already exists")

// ErrChunkIndexOutOfRange is an error thrown when a chunk index is out of range
var ErrChunkIndexOutOfRange = errors.New("chunk index out of range")

// ErrChunkMissing is an error thrown when assembly hits a missing chunk
var ErrChunkMissing = errors.New("chunk missing")

// ErrNoPendingVideo is an error thrown when no video is waiting to be transcoded
var ErrNoPendingVideo = errors.New("no pending video")

// ErrAlreadyClaimed is an error thrown when an asset left pending concurrently
var ErrAlreadyClaimed = errors.New("asset already claimed")

// ErrRetriesExhausted is an error thrown when a chunk send runs out of attempts
var ErrRetriesExhausted = errors.New("retries exhausted")
