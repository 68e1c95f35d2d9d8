package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials are the access keys of the S3 backend.
type Credentials struct {
	// AccessKey is the access key id.
	AccessKey string
	// SecretKey is the secret access key.
	SecretKey string
}

// Credential file keys.
const (
	keyAccessKey       = "aws_access_key"
	keySecretKey       = "aws_secret_key"
	keyUpdateAccessKey = "update_aws_access_key"
	keyUpdateSecretKey = "update_aws_secret_key"
)

// Static error definitions for better error handling.
var (
	// ErrMissingCredentials indicates that the credentials file lacks the access keys.
	ErrMissingCredentials = errors.New("access keys are missing from the credentials file")
)

// LoadCredentials reads the KEY=VALUE credentials file of the S3 backend.
// Update mode prefers the update_* keys and falls back to the regular ones.
// Environment variables with the upper-cased key names override the file.
func LoadCredentials(path string, updateMode bool) (Credentials, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file '%s': %w", path, err)
	}

	lookup := func(key string) string {
		if value, ok := os.LookupEnv(strings.ToUpper(key)); ok {
			return strings.TrimSpace(value)
		}

		return strings.TrimSpace(values[key])
	}

	creds := Credentials{
		AccessKey: lookup(keyAccessKey),
		SecretKey: lookup(keySecretKey),
	}

	if updateMode {
		if accessKey, secretKey := lookup(keyUpdateAccessKey), lookup(keyUpdateSecretKey); accessKey != "" &&
			secretKey != "" {
			creds.AccessKey = accessKey
			creds.SecretKey = secretKey
		}
	}

	if creds.AccessKey == "" || creds.SecretKey == "" {
		return Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredentials, path)
	}

	return creds, nil
}
