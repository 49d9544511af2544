package playable

import (
	"errors"
	"fmt"
	"time"

	"cardtable-server/pkg/deck"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// ErrInvalidAction is returned when an action is not allowed in the current phase
var ErrInvalidAction = errors.New("invalid action")

// InvalidActionError returns an ErrInvalidAction for the action and phase
func InvalidActionError(action Action, phase Phase) error {
	return fmt.Errorf("%w: cannot %s during %s", ErrInvalidAction, action, phase)
}

// Playable is a single-seat game session
// All methods must be called from one goroutine at a time; the room dealer guarantees this
type Playable interface {
	// Action performs with a message
	// If response is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(message *PayloadIn) (response *Response, updateState bool, err error)

	// GetState returns the current state of the game
	GetState() *Response

	// Phase returns the phase of the current round
	Phase() Phase

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
type LogMessage struct {
	UUID    string       `json:"uuid"`
	Cards   []*deck.Card `json:"cards,omitempty"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Response is a message sent to the client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse wraps an error for the client
func ErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

// PayloadIn is the format we expect from the client
type PayloadIn struct {
	Action         Action         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// Decode decodes the additional data into a struct using `json` tags
// JSON numbers arrive as float64, so decoding is weakly typed
func (a AdditionalData) Decode(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(map[string]interface{}(a))
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(cards []*deck.Card, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		Cards:   cards,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(nil, format, a...)}
}

// SendLog sends to the log channel without blocking
// A full channel means nobody is reading, so the message is dropped
func SendLog(logChan chan []*LogMessage, msgs ...*LogMessage) {
	if logChan == nil || len(msgs) == 0 {
		return
	}

	select {
	case logChan <- msgs:
	default:
	}
}
