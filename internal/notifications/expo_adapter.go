package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// ExpoAdapter sends through the Expo push service.
type ExpoAdapter struct {
	client *exponent.Client
}

// NewExpoAdapter builds an adapter; accessToken may be empty when enhanced
// push security is disabled on the Expo project.
func NewExpoAdapter(accessToken string) *ExpoAdapter {
	if accessToken == "" {
		return &ExpoAdapter{client: exponent.NewClient()}
	}
	return &ExpoAdapter{client: exponent.NewClient(exponent.WithAccessToken(accessToken))}
}

func (a *ExpoAdapter) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	return a.client.Publish(ctx, msgs)
}

func (a *ExpoAdapter) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	return a.client.PublishSingle(ctx, msg)
}
