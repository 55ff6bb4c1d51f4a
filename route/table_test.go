package route_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/route"
)

func TestTableFirstMatchWins(t *testing.T) {
	// Arrange
	var called []string
	tbl := route.NewTable()
	require.Nil(t, tbl.On(route.Template("/active/:id"), func(nav route.Navigation) {
		called = append(called, "h1:"+nav.Params["id"])
	}))
	require.Nil(t, tbl.On(route.Template("/active/:slug"), func(route.Navigation) {
		called = append(called, "h2")
	}))

	// Act
	ok, err := tbl.Handle(route.Navigation{Path: "/active/2"})

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"h1:2"}, called)
}

func TestTableHandleNavigation(t *testing.T) {
	// Arrange
	var actual route.Navigation
	tbl := route.NewTable()
	tbl.On(route.Template("/active/:id"), func(nav route.Navigation) { actual = nav })

	// Act
	ok, err := tbl.Handle(route.Navigation{Path: "/active/2", State: "s", Applied: true})

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, route.Navigation{
		Path:    "/active/2",
		State:   "s",
		Params:  map[string]string{"id": "2"},
		Applied: true,
	}, actual)
}

func TestTableDefault(t *testing.T) {
	// Arrange
	var called []string
	tbl := route.NewTable()
	tbl.On(route.Template("/active/:id"), func(route.Navigation) { called = append(called, "h1") })
	tbl.Default(func(route.Navigation) { called = append(called, "h3") })

	// Act
	ok, err := tbl.Handle(route.Navigation{Path: "/unknown"})

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"h3"}, called)
}

func TestTableDefaultFirstShadows(t *testing.T) {
	// Arrange
	var called []string
	tbl := route.NewTable()
	tbl.Default(func(route.Navigation) { called = append(called, "h3") })
	tbl.On(route.Template("/active/:id"), func(route.Navigation) { called = append(called, "h1") })

	// Act
	tbl.Handle(route.Navigation{Path: "/active/2"})

	// Assert
	require.Equal(t, []string{"h3"}, called)
}

func TestTableNoMatch(t *testing.T) {
	// Arrange
	tbl := route.NewTable()
	tbl.On(route.Template("/active/:id"), func(route.Navigation) { t.Fatal("unexpected handler call") })

	// Act
	ok, err := tbl.Handle(route.Navigation{Path: "/unknown"})

	// Assert
	require.Nil(t, err)
	require.False(t, ok)
}

func TestTableRegexpRoute(t *testing.T) {
	// Arrange
	var actual route.Navigation
	tbl := route.NewTable()
	tbl.On(route.Regexp(regexp.MustCompile(`delete\/[0-9]`)), func(nav route.Navigation) { actual = nav })

	// Act
	ok, err := tbl.Handle(route.Navigation{Path: "/delete/2"})

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, "/delete/2", actual.Path)
	require.Empty(t, actual.Params)
}

func TestTableBadPattern(t *testing.T) {
	// Arrange
	var called bool
	tbl := route.NewTable()
	tbl.On(route.Template("/active/:id"), func(route.Navigation) { called = true })

	// Act
	err := tbl.On(route.Template("/items/([0-9]+)"), func(route.Navigation) {})

	// Assert
	require.ErrorIs(t, err, route.ErrBadPattern)
	require.ErrorIs(t, tbl.Err(), route.ErrBadPattern)
	require.Len(t, tbl.Routes(), 2)
	require.ErrorIs(t, tbl.Routes()[1].Err(), route.ErrBadPattern)

	// Act
	ok, err := tbl.Handle(route.Navigation{Path: "/active/1"})

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.True(t, called)

	// Act
	ok, err = tbl.Handle(route.Navigation{Path: "/items/1"})

	// Assert
	require.ErrorIs(t, err, route.ErrBadPattern)
	require.False(t, ok)
}

func TestTableAlways(t *testing.T) {
	// Arrange
	var first, second []string
	tbl := route.NewTable()

	// Act
	tbl.Fire("/noop")
	tbl.Always(func(path string) { first = append(first, path) })
	tbl.Always(func(path string) { second = append(second, path) })
	tbl.Fire("/active/2")

	// Assert
	require.Empty(t, first)
	require.Equal(t, []string{"/active/2"}, second)

	// Act
	tbl.Always(nil)

	// Assert
	require.NotPanics(t, func() { tbl.Fire("/") })
}

func TestTableRoutesCopy(t *testing.T) {
	// Arrange
	tbl := route.NewTable()
	tbl.On(route.Template("/a"), nil)
	tbl.On(route.Template("/b"), nil)

	// Act
	routes := tbl.Routes()
	routes[0] = route.Route{}

	// Assert
	require.Equal(t, "/a", tbl.Routes()[0].Pattern.String())
	require.Equal(t, "/b", tbl.Routes()[1].Pattern.String())
	require.Nil(t, tbl.Err())
}
