package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedModelFile(t *testing.T) {
	for _, tc := range []struct {
		filename string
		allowed  bool
	}{
		{"part.stl", true},
		{"Корпус.STL", true},
		{"model.obj", true},
		{"model.3mf", true},
		{"model.gcode", false},
		{"model.stl.exe", false},
		{"noextension", false},
		{"", false},
	} {
		assert.Equal(t, tc.allowed, IsAllowedModelFile(tc.filename), tc.filename)
	}
}
