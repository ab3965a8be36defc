// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ClientWrapper wraps the Firestore client with its project id.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient creates a Firestore client. An empty credentialsFile means ADC.
func NewClient(ctx context.Context, log *zap.Logger, projectID, credentialsFile string, extra ...option.ClientOption) (*ClientWrapper, error) {
	if projectID == "" {
		return nil, errors.New("firestoreinfra: projectID is empty")
	}

	opts := append([]option.ClientOption(nil), extra...)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	if log != nil {
		log.Info("firestore connected", zap.String("project", projectID))
	}
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping reads one collection id; Firestore has no ping RPC.
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return errors.New("firestore client is nil")
	}
	it := cw.Client.Collections(ctx)
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
