package handlers

import "github.com/fleetscore/server/pkg/client"

func NewResponse(messages ...string) client.Response {
	return client.Response{
		Messages: messages,
	}
}
