// Package firestoredb contains the concrete implementation of the persistence
// layer on Cloud Firestore. Firestore is treated as an opaque transactional
// document store: atomicity comes from RunTransaction, relative stock
// adjustments from the server-side Increment primitive, and live collection
// mirrors from snapshot listeners.
package firestoredb

import (
	"context"
	"fmt"

	"pixelstore/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

const (
	collectionProducts = "products"
	collectionOrders   = "orders"
	collectionReviews  = "reviews"
)

// Client wraps the Firestore client together with the deployment's logical
// namespace (collection scope) so every repository addresses the same slice
// of data.
type Client struct {
	fs    *firestore.Client
	scope string
}

// Params holds dependencies for the Firestore client, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
}

// New initializes the Firestore client through the Firebase app, matching how
// the hosted deployment authenticates.
func New(params Params) (*Client, error) {
	cfg := params.Config.Firestore
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firestore project ID must be configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	fs, err := app.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	client := &Client{
		fs:    fs,
		scope: cfg.CollectionScope,
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(fs.Close())
		},
	})

	return client, nil
}

// collection returns the scoped collection reference, e.g. "store_v1_products".
func (c *Client) collection(name string) *firestore.CollectionRef {
	return c.fs.Collection(fmt.Sprintf("%s_%s", c.scope, name))
}
