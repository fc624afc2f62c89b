package externals

import (
	"context"
	"strings"
	"sync"

	firebase "firebase.google.com/go/v4"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"tourism-recommender-server/log"
)

const credentialsFile = "firebaseServiceAccountKey.json"

var (
	firebaseApp *firebase.App
	firebaseErr error
	once        sync.Once
	testMode    bool
)

// SetTestMode switches token verification off: in test mode the bearer
// token is taken as the firebase uid.
func SetTestMode(test bool) {
	testMode = test
}

// InitializeFirebase creates the Admin SDK app once from the service account
// key in the working directory.
func InitializeFirebase() (*firebase.App, error) {
	once.Do(func() {
		opt := option.WithCredentialsFile(credentialsFile)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Logger().Error("error initializing Firebase Admin SDK", zap.Error(err))
			firebaseErr = errors.Annotate(err, "initialize firebase")
			return
		}
		firebaseApp = app
	})
	return firebaseApp, firebaseErr
}

// VerifyFirebaseToken returns the firebase uid the token was issued for.
// Invalid or empty tokens fail with an Unauthorized error.
func VerifyFirebaseToken(ctx context.Context, idToken string) (string, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return "", errors.Unauthorizedf("missing token")
	}
	if testMode {
		// if test mode, the token is the uid
		return idToken, nil
	}

	app, err := InitializeFirebase()
	if err != nil {
		return "", err
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return "", errors.Trace(err)
	}
	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.NewUnauthorized(err, "invalid token")
	}
	return token.UID, nil
}
