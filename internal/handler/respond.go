package handler

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respond writes a success envelope with a single resource.
func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// respondList writes a success envelope with a collection and its count.
func respondList(c echo.Context, status int, data interface{}, count int) error {
	return c.JSON(status, Envelope{Success: true, Count: &count, Data: data})
}
