package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/route"
)

func TestDecodePath(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "/active/2", "/active/2"},
		{"Space", "/users/Edmund%20Husserl", "/users/Edmund Husserl"},
		{"Lowercase-Hex", "/caf%c3%a9", "/café"},
		{"Reserved-Slash-Kept", "/users/a%2Fb", "/users/a%2Fb"},
		{"Reserved-Hash-Kept", "/tags/%23go", "/tags/%23go"},
		{"Percent-Literal", "/discount/100%25", "/discount/100%"},
		{"Truncated", "/discount/100%", "/discount/100%"},
		{"Not-Hex", "/x/%zz", "/x/%zz"},
		{"Invalid-UTF8", "/x/%ff", "/x/%ff"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, route.DecodePath(tc.input))
		})
	}
}
