package route_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/route"
)

func TestCompileTemplate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		pattern route.Template
		path    string
		match   bool
		params  map[string]string
	}{
		{"Param", "/active/:id", "/active/2", true, map[string]string{"id": "2"}},
		{"Param-Trailing-Slash", "/active/:id", "/active/2/", true, map[string]string{"id": "2"}},
		{"Param-Extra-Segment", "/active/:id", "/active/2/edit", false, nil},
		{"Param-Empty-Segment", "/active/:id", "/active/", false, nil},
		{"Unanchored-Start", "/active/:id", "/archive/active/2", true, map[string]string{"id": "2"}},
		{"Star-Named", "/files/*name", "/files/a.txt", true, map[string]string{"name": "a.txt"}},
		{"Wildcard", "/assets/*", "/assets/css/app.css", true, map[string]string{}},
		{"Wildcard-Nothing", "/assets/*", "/assets/", true, map[string]string{}},
		{"Literal", "/", "/", true, map[string]string{}},
		{"Literal-Trailing-Only", "/", "/unknown", false, nil},
		{"Literal-Trailing-Slash", "/", "/unknown/", true, map[string]string{}},
		{"Literal-Miss", "/about", "/contact", false, nil},
		{"Empty-Matches-All", "", "/unknown", true, map[string]string{}},
		{"Empty-Matches-Root", "", "/", true, map[string]string{}},
		{"Decoded", "/users/:name", "/users/Edmund%20Husserl", true, map[string]string{"name": "Edmund Husserl"}},
		{"Decoded-Slash", "/users/:name", "/users/a%2Fb", true, map[string]string{"name": "a/b"}},
		{"Undecodable-Kept-Raw", "/users/:name", "/users/100%", true, map[string]string{"name": "100%"}},
		{
			"Many",
			"/orgs/:org/users/:user",
			"/orgs/xypn/users/7",
			true,
			map[string]string{"org": "xypn", "user": "7"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			m, err := route.Compile(tc.pattern)
			require.Nil(t, err)

			// Act
			params, ok := m.Match(tc.path)

			// Assert
			require.Equal(t, tc.match, ok)
			require.Equal(t, tc.params, params)
		})
	}
}

func TestCompileTemplateNames(t *testing.T) {
	// Act
	m, err := route.Compile(route.Template("/orgs/:org/*/files/*file/:rev"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"org", "file", "rev"}, m.Names)
}

func TestCompileInstantiation(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		values  []string
	}{
		{"/active/:id", []string{"2"}},
		{"/orgs/:org/users/:user", []string{"xypn", "42"}},
		{"/:a/:b/:c", []string{"x", "y", "z"}},
		{"/reports/:year/*/:slug", []string{"2024", "q1"}},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			// Arrange
			m, err := route.Compile(route.Template(tc.pattern))
			require.Nil(t, err)

			path := tc.pattern
			expected := make(map[string]string)
			for i, name := range m.Names {
				path = strings.Replace(path, ":"+name, tc.values[i], 1)
				expected[name] = tc.values[i]
			}
			path = strings.Replace(path, "*", "any/thing", 1)

			// Act
			params, ok := m.Match(path)

			// Assert
			require.True(t, ok)
			require.Equal(t, expected, params)
		})
	}
}

func TestCompileDeterministic(t *testing.T) {
	// Arrange
	first, err := route.Compile(route.Template("/orgs/:org/users/:user"))
	require.Nil(t, err)
	second, err := route.Compile(route.Template("/orgs/:org/users/:user"))
	require.Nil(t, err)

	// Assert
	require.Equal(t, first.Names, second.Names)
	require.Equal(t, first.Expr.String(), second.Expr.String())
	for _, path := range []string{"/orgs/a/users/b", "/orgs/a/users", "/x/orgs/a/users/b/"} {
		p1, ok1 := first.Match(path)
		p2, ok2 := second.Match(path)
		require.Equal(t, ok1, ok2)
		require.Equal(t, p1, p2)
	}
}

func TestCompileBadTemplate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		pattern route.Template
	}{
		{"Extra-Group", "/items/([0-9]+)"},
		{"Extra-Group-With-Param", "/items/:id/(edit|view)"},
		{"Invalid-Expression", "/items/(:id"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := route.Compile(tc.pattern)

			// Assert
			require.ErrorIs(t, err, route.ErrBadPattern)
			require.ErrorIs(t, err, waypoint.ErrBadConfig)
		})
	}
}

func TestCompileExpr(t *testing.T) {
	t.Run("Unnamed-Free", func(t *testing.T) {
		// Arrange
		m, err := route.Compile(route.Regexp(regexp.MustCompile(`delete\/[0-9]`)))
		require.Nil(t, err)

		// Act
		params, ok := m.Match("/delete/2")

		// Assert
		require.True(t, ok)
		require.Empty(t, params)
		require.Empty(t, m.Names)
	})

	t.Run("Named", func(t *testing.T) {
		// Arrange
		m, err := route.Compile(route.Regexp(regexp.MustCompile(`^/delete/(?P<id>[0-9]+)$`)))
		require.Nil(t, err)

		// Act
		params, ok := m.Match("/delete/12")

		// Assert
		require.True(t, ok)
		require.Equal(t, map[string]string{"id": "12"}, params)
	})

	t.Run("Non-Participating", func(t *testing.T) {
		// Arrange
		m, err := route.Compile(route.Regexp(regexp.MustCompile(`^/items(?:/(?P<id>[0-9]+))?$`)))
		require.Nil(t, err)

		// Act
		params, ok := m.Match("/items")

		// Assert
		require.True(t, ok)
		require.Equal(t, map[string]string{}, params)
	})

	t.Run("Unnamed-Group", func(t *testing.T) {
		// Act
		_, err := route.Compile(route.Regexp(regexp.MustCompile(`delete/([0-9])`)))

		// Assert
		require.ErrorIs(t, err, route.ErrBadPattern)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := route.Compile(route.Regexp(nil))
		require.ErrorIs(t, err, route.ErrBadPattern)

		_, err = route.Compile(nil)
		require.ErrorIs(t, err, route.ErrBadPattern)
	})
}

func TestMatcherZeroValue(t *testing.T) {
	params, ok := route.Matcher{}.Match("/")

	require.False(t, ok)
	require.Nil(t, params)
}
