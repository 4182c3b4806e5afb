package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModerationActionRequest_DeltaPointsValue(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"absent", `{"action": "adjust_points", "userId": "u1"}`, 0},
		{"integer", `{"action": "adjust_points", "userId": "u1", "deltaPoints": -15}`, -15},
		{"float truncates", `{"action": "adjust_points", "userId": "u1", "deltaPoints": 3.9}`, 3},
		{"string is ignored", `{"action": "adjust_points", "userId": "u1", "deltaPoints": "ten"}`, 0},
		{"null", `{"action": "adjust_points", "userId": "u1", "deltaPoints": null}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req ModerationActionRequest
			assert.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.want, req.DeltaPointsValue())
		})
	}
}
