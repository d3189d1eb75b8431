package service

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type GoogleVerifier interface {
	Verify(idToken string) (GoogleIdentity, error)
}

// googleVerifier checks the token signature and audience against Google's certs.
type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns nil when clientID is empty (sign-in disabled).
func NewGoogleVerifier(clientID string) GoogleVerifier {
	if clientID == "" {
		return nil
	}
	return googleVerifier{clientID: clientID}
}

func (g googleVerifier) Verify(idToken string) (GoogleIdentity, error) {
	if idToken == "" {
		return GoogleIdentity{}, errors.New("empty id token")
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return GoogleIdentity{}, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, err
	}
	return GoogleIdentity{Subject: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}
