package firebase

import (
	"fmt"
	"os"

	"google.golang.org/api/option"
)

// ClientOptions picks service account credentials shared by the Firestore,
// Auth and Storage clients. Inline JSON wins over a file path; with neither,
// the clients fall back to application default credentials.
func ClientOptions(serviceAccountJSON, serviceAccountPath string) ([]option.ClientOption, error) {
	if serviceAccountJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(serviceAccountJSON))}, nil
	}

	if serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", serviceAccountPath, err)
		}
		return []option.ClientOption{option.WithCredentialsFile(serviceAccountPath)}, nil
	}

	return nil, nil
}
