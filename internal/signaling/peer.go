// Package signaling negotiates WebRTC peers over a websocket and carries
// input messages on their data channel.
package signaling

import (
	"fmt"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// PeerFactory builds peer connections sharing one configured API.
type PeerFactory struct {
	api    *webrtc.API
	config webrtc.Configuration
}

// NewPeerFactory initializes the WebRTC API with default codecs and
// interceptors. iceServers are STUN/TURN URLs.
func NewPeerFactory(iceServers []string) (*PeerFactory, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	cfg := webrtc.Configuration{}
	if len(iceServers) > 0 {
		cfg.ICEServers = []webrtc.ICEServer{{URLs: iceServers}}
	}
	return &PeerFactory{api: api, config: cfg}, nil
}

// Config returns the peer configuration used for new peers.
func (f *PeerFactory) Config() webrtc.Configuration {
	return f.config
}

// NewPeer creates a new peer connection.
func (f *PeerFactory) NewPeer() (*webrtc.PeerConnection, error) {
	peer, err := f.api.NewPeerConnection(f.config)
	if err != nil {
		return nil, fmt.Errorf("new peer: %w", err)
	}
	return peer, nil
}
