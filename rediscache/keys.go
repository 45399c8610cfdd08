package rediscache

import (
	"encoding/binary"

	"emperror.dev/errors"
)

// Prefix is the single leading byte identifying a record category. The byte
// values are part of the wire contract: changing any of them is a breaking
// migration.
type Prefix byte

const (
	// PrefixGuildConfigs keys per-guild configuration records, stored as a
	// hash with one field per config sub-kind.
	PrefixGuildConfigs Prefix = 1
	// PrefixOnlineStatus keys per-guild sets of online user IDs.
	PrefixOnlineStatus Prefix = 2
	// PrefixMessages keys cached message records.
	PrefixMessages Prefix = 3
)

// Key encodes a single-ID key: the prefix byte followed by the ID as a
// big-endian uint64, 9 bytes total. Big-endian keeps lexicographic key
// order equal to numeric ID order.
func Key(p Prefix, id uint64) string {
	var b [9]byte
	b[0] = byte(p)
	binary.BigEndian.PutUint64(b[1:9], id)
	return string(b[:])
}

// PairKey encodes a composite key of two IDs (such as channel + message),
// 17 bytes total.
func PairKey(p Prefix, first, second uint64) string {
	var b [17]byte
	b[0] = byte(p)
	binary.BigEndian.PutUint64(b[1:9], first)
	binary.BigEndian.PutUint64(b[9:17], second)
	return string(b[:])
}

// idArg encodes a bare ID as 8 big-endian bytes, for use as a set member.
func idArg(id uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return string(b[:])
}

// parseIDArg decodes an 8-byte set member back into an ID.
func parseIDArg(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errors.Errorf("malformed ID member: %d bytes", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}
