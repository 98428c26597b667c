package lib

import (
	"context"
	"errors"
	"log"
	"os"
	"path"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var innerApp *firebase.App
var innerAuth *auth.Client

func getOpts() *option.ClientOption {
	secretsPath := os.Getenv("SECRETS_DIR")
	opt := option.WithCredentialsFile(path.Join(secretsPath, "admin-sdk-credentials.json"))
	return &opt
}

// GetFirebaseAuth lazily initializes the Firebase Admin client used to
// verify social sign-in ID tokens.
func GetFirebaseAuth() (*auth.Client, error) {
	if innerAuth != nil {
		return innerAuth, nil
	}
	if os.Getenv("SECRETS_DIR") == "" {
		return nil, errors.New("firebase admin not configured")
	}
	opt := getOpts()
	if innerApp == nil {
		app, err := firebase.NewApp(context.Background(), nil, *opt)
		if err != nil {
			log.Printf("error initializing app: %v\n", err.Error())
			return nil, err
		}
		innerApp = app
	}

	au, err := innerApp.Auth(context.Background())
	if err != nil {
		log.Printf("error initializing Firebase Auth: %v\n", err.Error())
		return nil, err
	}
	innerAuth = au

	return au, nil
}

// NewFirebaseApp replaces the cached app, used by tests.
func NewFirebaseApp(app *firebase.App) {
	innerApp = app
	au, err := innerApp.Auth(context.Background())
	if err != nil {
		log.Fatalf("error initializing Firebase Auth: %s\n", err.Error())
	}
	innerAuth = au
}
