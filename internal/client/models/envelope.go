package models

import (
	"bytes"
	"encoding/json"
)

// Envelope is the {success, message, data} wrapper most backend responses
// use.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// IsEnvelope reports whether body is a JSON object carrying a "success"
// member, i.e. whether it should be unwrapped before decoding.
func IsEnvelope(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	_, ok := probe["success"]
	return ok
}

// TokenGrant is the data of a token-issuing response. Outside production
// the backend may echo the confirmation token; it can arrive as a bare
// string or inside an object under one of several names.
type TokenGrant struct {
	Token string
}

var tokenGrantKeys = []string{"token", "verificationToken", "resetPasswordToken", "editToken", "deleteToken"}

func (g *TokenGrant) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		g.Token = s
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		// numbers, arrays and friends carry no token
		return nil
	}
	for _, k := range tokenGrantKeys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err == nil && v != "" {
			g.Token = v
			return nil
		}
	}
	return nil
}

// Ack is the outcome of a call that answers with a message and, on the
// token-issuing endpoints, possibly an inline confirmation token.
type Ack struct {
	Message string
	Token   string
}
