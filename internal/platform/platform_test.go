package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{ProductName: "Windows 11 Pro", DisplayVersion: "23H2", Build: "22631"}, "Windows 11 Pro 23H2 (build 22631)"},
		{Info{ProductName: "Windows 10 Enterprise LTSC 2019", Build: "17763"}, "Windows 10 Enterprise LTSC 2019 (build 17763)"},
		{Info{ProductName: "linux"}, "linux"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.info.String())
	}
}

func TestDetect(t *testing.T) {
	info := Detect()
	assert.NotEmpty(t, info.ProductName)
	t.Logf("platform: %s admin=%v", info, info.IsAdmin)
}
