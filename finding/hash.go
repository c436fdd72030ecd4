package finding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns a highwayhash-64 of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint identifies a finding independently of its line number, so it survives
// edits elsewhere in the file. occurrence numbers textually identical sites of the
// same rule, path and message in visitation order, starting at 0.
func Fingerprint(ruleID, path, message, lineText string, occurrence int) (string, error) {
	data := strings.Join([]string{ruleID, path, message, strings.TrimSpace(lineText), strconv.Itoa(occurrence)}, "|")
	value, err := Hash([]byte(data))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", value), nil
}
