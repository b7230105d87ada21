package models

const (
	GroupMetrics = "metrics"
	GroupStatus  = "status"

	MessageMetricsUpdate = "metrics_update"
	MessageStatusUpdate  = "status_update"
	MessageError         = "error"
)

// PushMessage is the envelope written to push channel clients.
// Updates carry Data; error messages carry Message.
type PushMessage struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ChannelState int

const (
	ChannelConnecting ChannelState = iota
	ChannelOpen
	ChannelClosed
)

func (s ChannelState) String() string {
	switch s {
	case ChannelConnecting:
		return "connecting"
	case ChannelOpen:
		return "open"
	case ChannelClosed:
		return "closed"
	default:
		return "unknown"
	}
}
