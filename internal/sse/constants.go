package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 100
	// ClientEventBuffer is how many events a slow client may fall behind
	// before events are dropped for it.
	ClientEventBuffer = 50
)

// KeepaliveInterval is how often idle streams get a keepalive event
const KeepaliveInterval = 30 * time.Second

// Stream event types besides the forwarded market events
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters the stream to a comma-separated list of event types
const QueryParamTypes = "types"

// Error messages
const (
	ErrMsgUnknownEventType = "unknown event type %q"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventDropped       = "Stream broadcast buffer full, event dropped"
	LogMsgClientBehind       = "Stream client buffer full, event dropped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgSubscriberReady    = "Market stream subscribed to event bus"
)
