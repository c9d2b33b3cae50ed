// Package signaling negotiates WebRTC peers over a websocket and carries
// input messages on their data channel.
package signaling

import "github.com/pion/webrtc/v3"

// Message is a websocket signaling payload: "offer", "answer", "ice" or
// "restart".
type Message struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
}
