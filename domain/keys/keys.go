package keys

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const (
	// PfxEns is used for prefixing ens lookup cache keys
	PfxEns = "ens"
	// PfxEnsRecords is used for prefixing multi-record lookups
	PfxEnsRecords = "ensRecords"
	// PfxEnsReverse is used for prefixing reverse lookups
	PfxEnsReverse = "ensReverse"
)

// MD5 hashes the data with md5
func MD5(data string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the first two components of a key for metric tags
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	switch {
	case len(s) > 2:
		return strings.Join(s[:2], ":")
	case len(s) > 1:
		return s[0]
	}
	return ""
}
