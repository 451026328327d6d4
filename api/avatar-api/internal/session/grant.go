// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// grantTTL is how long an issued token stays valid. Rooms are ephemeral and
// scoped per session, so the window stays short.
const grantTTL = 15 * time.Minute

// Broker mints scoped, time-limited access tokens for the realtime media
// room provider. Stateless; grants are never persisted.
type Broker struct {
	logger    commons.Logger
	serverURL string
	apiKey    string
	apiSecret string
	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

// NewBroker fails with ConfigurationError when signing credentials are
// absent. That is a startup condition: the caller must not offer the
// session capability at all.
func NewBroker(logger commons.Logger, cfg *config.AppConfig) (*Broker, error) {
	switch {
	case cfg.LiveKitURL == "":
		return nil, &internal_type.ConfigurationError{Missing: "LIVEKIT_URL"}
	case cfg.LiveKitAPIKey == "":
		return nil, &internal_type.ConfigurationError{Missing: "LIVEKIT_API_KEY"}
	case cfg.LiveKitAPISecret == "":
		return nil, &internal_type.ConfigurationError{Missing: "LIVEKIT_API_SECRET"}
	}
	return &Broker{
		logger:    logger,
		serverURL: cfg.LiveKitURL,
		apiKey:    cfg.LiveKitAPIKey,
		apiSecret: cfg.LiveKitAPISecret,
		clock:     time.Now,
	}, nil
}

// IssueGrant mints a fresh identity/room pair and a signed token limited to
// joining that room, publishing audio and data, and subscribing. No admin
// capabilities are ever granted.
func (b *Broker) IssueGrant() (internal_type.SessionGrant, error) {
	suffix := uuid.NewString()[:8]
	identity := fmt.Sprintf("voice_assistant_user_%s", suffix)
	room := fmt.Sprintf("voice_assistant_room_%s", uuid.NewString()[:8])

	now := b.clock()
	claims := jwt.MapClaims{
		"iss": b.apiKey,
		"sub": identity,
		"jti": identity,
		"nbf": now.Unix(),
		"exp": now.Add(grantTTL).Unix(),
		"video": map[string]interface{}{
			"room":           room,
			"roomJoin":       true,
			"canPublish":     true,
			"canPublishData": true,
			"canSubscribe":   true,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(b.apiSecret))
	if err != nil {
		return internal_type.SessionGrant{}, fmt.Errorf("sign grant: %w", err)
	}

	b.logger.Debugf("session: issued grant for %s in %s", identity, room)
	return internal_type.SessionGrant{
		ServerURL:        b.serverURL,
		RoomName:         room,
		ParticipantName:  identity,
		ParticipantToken: token,
	}, nil
}
