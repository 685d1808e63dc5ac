package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/campusbot/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chkrec"
	chunkOrdinalSeq   = "chkseq"
	leadRecordPrefix  = "leadrec"
)

// makeChunkKey generates a key for a chunk within its collection.
// Format: prefix:collection:id (ID in BigEndian so keys are fixed-width)
func makeChunkKey(collection core.Collection, id core.ID) []byte {
	prefix := chunkRecordPrefix + ":" + string(collection) + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeCollectionPrefix generates the iteration prefix for a collection's chunks.
func makeCollectionPrefix(collection core.Collection) []byte {
	return []byte(chunkRecordPrefix + ":" + string(collection) + ":")
}

// makeChunkSeqName generates the sequence name for a collection's ingestion ordinals.
func makeChunkSeqName(collection core.Collection) string {
	return fmt.Sprintf("%s:%s", chunkOrdinalSeq, collection)
}

// makeLeadKey generates a key for a lead record by session ID.
func makeLeadKey(sessionID string) []byte {
	return []byte(leadRecordPrefix + ":" + sessionID)
}

// leadPrefix is the iteration prefix for all lead records.
func leadPrefix() []byte {
	return []byte(leadRecordPrefix + ":")
}
