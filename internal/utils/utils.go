package utils

import (
	"crypto/md5" //nolint:gosec // MD5 is the content hash recorded in the catalog, not a security primitive.
	"encoding/hex"
	"errors"
	"io"
	"mime"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oshokin/cloud-jukebox/internal/constants"
)

var (
	// invalidCharsPattern includes ASCII control characters (0-31) and Windows-restricted characters: < > : " / \ | ? *.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	invalidCharsPattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

	// textContentTypePatterns matches content types considered to be text-based.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/xml$`),
	}
)

// ErrNoLocalAddress indicates that no non-loopback IPv4 address was found.
var ErrNoLocalAddress = errors.New("no local network address found")

// SafeInt64ToUint64 converts an int64 to uint64, clamping negative values to zero.
func SafeInt64ToUint64(val int64) uint64 {
	if val < 0 {
		return 0
	}

	return uint64(val)
}

// SanitizeFilename replaces characters that are not valid in file or object names.
func SanitizeFilename(name string) string {
	if name == "" {
		return ""
	}

	result := strings.TrimRight(invalidCharsPattern.ReplaceAllString(name, "_"), ".")
	if result == "" {
		result = "_"
	}

	return result
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// RemoveIfExists deletes a file and treats a missing file as success.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// MD5ForFile returns the hex-encoded MD5 digest of the file contents.
func MD5ForFile(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	hash := md5.New() //nolint:gosec // See the import comment.
	if _, err = io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// AppendLine appends a single line to a text file, creating the file when needed.
func AppendLine(path, line string) error {
	file, err := os.OpenFile(
		filepath.Clean(path),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		constants.DefaultFilePermissions)
	if err != nil {
		return err
	}

	_, err = file.WriteString(line + "\n")
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	return err
}

// LocalIPAddress returns the first non-loopback IPv4 address of this host.
func LocalIPAddress() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}

		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}

	return "", ErrNoLocalAddress
}

// IsTextContentType checks if the given content type represents a text-based format
// with a utf-8 or us-ascii charset (or none).
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}
