// internal/infra/secret/accessor.go
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var (
	ErrNotConfigured = errors.New("secret: accessor not configured")
	ErrEmptyPayload  = errors.New("secret: empty payload")
)

// versionAccessor is the slice of the Secret Manager client the accessor uses.
type versionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Accessor reads secret payloads from Secret Manager.
type Accessor struct {
	sm        versionAccessor
	projectID string
}

func NewAccessor(sm *secretmanager.Client, projectID string) *Accessor {
	if sm == nil {
		return &Accessor{projectID: projectID}
	}
	return &Accessor{sm: sm, projectID: projectID}
}

// Name returns the resource name of a secret version; empty version means "latest".
// A secretID that is already a full resource name is returned unchanged.
func (a *Accessor) Name(secretID, version string) string {
	secretID = strings.TrimSpace(secretID)
	if strings.HasPrefix(secretID, "projects/") {
		return secretID
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", strings.TrimSpace(a.projectID), secretID, version)
}

// Access returns the trimmed payload of the latest version of secretID.
func (a *Accessor) Access(ctx context.Context, secretID string) (string, error) {
	if a == nil || a.sm == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(secretID) == "" {
		return "", errors.New("secret: secretID is empty")
	}
	if strings.TrimSpace(a.projectID) == "" && !strings.HasPrefix(strings.TrimSpace(secretID), "projects/") {
		return "", errors.New("secret: projectID is empty")
	}

	name := a.Name(secretID, "")
	resp, err := a.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secret: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("%w (%s)", ErrEmptyPayload, name)
	}

	v := strings.TrimSpace(string(resp.Payload.Data))
	if v == "" {
		return "", fmt.Errorf("%w (%s)", ErrEmptyPayload, name)
	}
	return v, nil
}
