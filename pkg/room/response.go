package room

import (
	"cardtable-server/pkg/playable"
)

type clientState struct {
	Session   *Session `json:"session"`
	Connected int      `json:"connected"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return playable.ErrorResponse(ctx, err)
}

func newLogResponse(messages []*playable.LogMessage) *playable.Response {
	return &playable.Response{
		Key:  "log",
		Data: messages,
	}
}
