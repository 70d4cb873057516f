package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/kbforge/kbforge/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix  = "docrec"
	documentTeamPrefix    = "docteam"
	documentUpdatedPrefix = "docupd"
	documentAccessPrefix  = "docaccess"
	documentIDSeq         = "docrecseq"
	teamRecordPrefix      = "teamrec"
	teamIDSeq             = "teamrecseq"
	userRecordPrefix      = "userrec"
	userEmailPrefix       = "useremail"
	userIDSeq             = "userrecseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeDocumentTeamKey generates a composite key for the team ownership index.
// Format: prefix:teamID:docID
func makeDocumentTeamKey(teamID, docID core.ID) []byte {
	prefix := documentTeamPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for teamID + 8 bytes for docID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(teamID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makePartialDocumentTeamKey generates a partial key for scanning a team's documents.
// Format: prefix:teamID
func makePartialDocumentTeamKey(teamID core.ID) []byte {
	prefix := documentTeamPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for teamID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(teamID))
	return buf
}

// makeDocumentUpdatedKey generates a composite key for the per-team recency index.
// Format: prefix:teamID:updatedAt:docID
func makeDocumentUpdatedKey(teamID core.ID, updatedAt time.Time, docID core.ID) []byte {
	prefix := documentUpdatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // 8 bytes each for teamID, timestamp and docID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(teamID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(updatedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makePartialDocumentUpdatedKey generates a partial key for recency scans
// within a team. Format: prefix:teamID:updatedAt
func makePartialDocumentUpdatedKey(teamID core.ID, updatedAt time.Time) []byte {
	prefix := documentUpdatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for teamID + 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(teamID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(updatedAt.UnixMicro()))
	return buf
}

// makeDocumentAccessKey generates a composite key for the access overlay index.
// Format: prefix:userID:docID
func makeDocumentAccessKey(userID, docID core.ID) []byte {
	prefix := documentAccessPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for userID + 8 bytes for docID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(userID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makePartialDocumentAccessKey generates a partial key for scanning a user's
// overlay-granted documents. Format: prefix:userID
func makePartialDocumentAccessKey(userID core.ID) []byte {
	prefix := documentAccessPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for userID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(userID))
	return buf
}

// makeTeamKey generates a key for a team by ID.
func makeTeamKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", teamRecordPrefix, id))
}

// makeUserKey generates a key for a user by ID.
func makeUserKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", userRecordPrefix, id))
}

// makeUserEmailKey generates a key for user lookup by normalized email.
func makeUserEmailKey(email string) []byte {
	return []byte(fmt.Sprintf("%s:%s", userEmailPrefix, email))
}
