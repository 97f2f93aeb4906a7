package pkgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "1.22.19", "1.22.19", false},
		{"trailing newline", "9.8.1\n", "9.8.1", false},
		{"v prefix", "v18.17.0", "18.17.0", false},
		{"prerelease stripped", "1.12.0-rc1", "1.12.0", false},
		{"build stripped", "1.12.0+20190101", "1.12.0", false},
		{"multi-line output", "3.6.1\nsome notice\n", "3.6.1", false},
		{"empty", "", "", true},
		{"garbage", "not a version", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestMeetsMinimum(t *testing.T) {
	tests := []struct {
		version string
		npm     bool
		yarnPnp bool
	}{
		{"5.0.0", true, true},
		{"4.9.9", false, true},
		{"1.12.0", false, true},
		{"1.12.0-rc1", false, true},
		{"1.11.9", false, false},
		{"1.11.9-beta", false, false},
		{"10.2.4", true, true},
		{"", false, false},
		{"unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.npm, MeetsMinimum(tt.version, MinNpmVersion), "npm minimum")
			assert.Equal(t, tt.yarnPnp, MeetsMinimum(tt.version, MinYarnPnpVersion), "yarn pnp minimum")
		})
	}
}

func TestKindMinimum(t *testing.T) {
	assert.Equal(t, MinNpmVersion, Npm.Minimum())
	assert.Equal(t, MinYarnPnpVersion, Yarn.Minimum())
}
