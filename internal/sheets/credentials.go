// Package sheets is the Google Sheets data-source port. It wraps the
// Sheets API behind a client returning plain tabular values so the import
// pipeline never touches a concrete HTTP or spreadsheet-API dependency.
package sheets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"

	"github.com/lucemia/agent-hr/internal/schemas"
)

// CredentialsEnvVar points at the service-account JSON file.
const CredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"

// defaultCredentialsPath is the fixed fallback location, relative to the
// user's home directory.
var defaultCredentialsPath = filepath.Join(".config", "agent-hr", "service_account.json")

// CredentialsError reports missing or unusable Google credentials with
// enough guidance to fix the setup. It surfaces at fetch time, never as a
// crash.
type CredentialsError struct {
	Message string
	Cause   error
}

func (e *CredentialsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CredentialsError) Unwrap() error {
	return e.Cause
}

// ResolveCredentialsPath locates the service-account credentials file,
// trying in order: the environment variable, the fixed default path, and a
// local .env file declaring the same variable.
func ResolveCredentialsPath() (string, error) {
	if path := os.Getenv(CredentialsEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, defaultCredentialsPath)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if env, err := godotenv.Read(".env"); err == nil {
		if path := env[CredentialsEnvVar]; path != "" {
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", &CredentialsError{
		Message: fmt.Sprintf(
			"Google service account credentials not found. Provide them via the %s environment variable, "+
				"place the JSON file at ~/%s, or declare %s in a local .env file. "+
				"Create a service account in the Google Cloud Console, download its JSON key, "+
				"and share the spreadsheet with the service account email",
			CredentialsEnvVar, defaultCredentialsPath, CredentialsEnvVar),
	}
}

// LoadCredentials resolves, reads, and sanity-checks the credentials file.
func LoadCredentials() ([]byte, error) {
	path, err := ResolveCredentialsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CredentialsError{
			Message: fmt.Sprintf("failed to read credentials file %s", path),
			Cause:   err,
		}
	}

	if err := schemas.ValidateServiceAccount(data); err != nil {
		return nil, &CredentialsError{
			Message: fmt.Sprintf("credentials file %s is not a usable service account key", path),
			Cause:   err,
		}
	}

	return data, nil
}

// ServiceAccountEmail extracts the service-account address from a
// credentials document, for telling the user whom to share the sheet with.
func ServiceAccountEmail(credentials []byte) string {
	return gjson.GetBytes(credentials, "client_email").String()
}
