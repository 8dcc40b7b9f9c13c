package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/ethical-careers/ethical-careers-backend/config"
)

// Firebase bundles the admin SDK clients the app needs.
type Firebase struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// OpenFirebase initializes the Firebase Admin SDK plus the Auth and
// Firestore clients. With no credentials path set, the SDK falls back to
// application default credentials (the emulator / GCP runtime case).
func OpenFirebase(ctx context.Context, cfg config.FirebaseConfig) (*Firebase, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return &Firebase{App: app, Auth: authClient, Firestore: fsClient}, nil
}

// Close releases the Firestore connection.
func (f *Firebase) Close() error {
	if f == nil || f.Firestore == nil {
		return nil
	}
	return f.Firestore.Close()
}
