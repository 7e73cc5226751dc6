package repository

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	addressesCollection = "geocoded_addresses"
)

// FirestoreAddressCache shares geocoded addresses between service instances
type FirestoreAddressCache struct {
	client *firestore.Client
}

var _ interfaces.AddressCache = (*FirestoreAddressCache)(nil)

// NewFirestoreAddressCache creates a new Firestore backed address cache
func NewFirestoreAddressCache(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*FirestoreAddressCache, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on a wrong project or missing permissions
	_, err = client.Collection(addressesCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore address cache initialized",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &FirestoreAddressCache{client: client}, nil
}

// GetAddress returns the cached address, or nil on a miss
func (f *FirestoreAddressCache) GetAddress(ctx context.Context, key string) (*model.Address, error) {
	doc, err := f.client.Collection(addressesCollection).Doc(documentID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get address from firestore", goerr.V("key", key))
	}

	var addr model.Address
	if err := doc.DataTo(&addr); err != nil {
		return nil, goerr.Wrap(err, "failed to decode address", goerr.V("key", key))
	}
	return &addr, nil
}

// PutAddress stores the address
func (f *FirestoreAddressCache) PutAddress(ctx context.Context, key string, address *model.Address) error {
	if address == nil {
		return nil
	}

	_, err := f.client.Collection(addressesCollection).Doc(documentID(key)).Set(ctx, address)
	if err != nil {
		return goerr.Wrap(err, "failed to save address to firestore", goerr.V("key", key))
	}
	return nil
}

// Close closes the Firestore client
func (f *FirestoreAddressCache) Close() error {
	return f.client.Close()
}

// documentID makes a coordinate key usable as a document ID. Document IDs
// must not contain '/'.
func documentID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}
