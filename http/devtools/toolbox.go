package devtools

import (
	"net/http"
	"strings"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/route"
)

// Toolbox lists the navigations a developer can trigger through the endpoints mounted at base:
// pushing each literal template route, and the history actions.
//
// Routes with placeholders or regular expressions need values the toolbox cannot guess,
// so they are left out.
func Toolbox(base string, routes []route.Route) waypoint.Toolbox {
	push := waypoint.Tool{Title: "Routes"}
	for _, rt := range routes {
		tmpl, ok := rt.Pattern.(route.Template)
		if !ok || rt.Err() != nil || !isLiteral(tmpl) {
			continue
		}

		path := string(tmpl)
		if path == "" {
			path = "/"
		}

		push.Actions = append(push.Actions, waypoint.NavigationAction("Push "+path, http.MethodPost, base+"/push", path))
	}

	hist := waypoint.Tool{
		Title: "History",
		Actions: []waypoint.ToolAction{
			{Method: http.MethodPost, Name: "Back", URL: base + "/back"},
			{Method: http.MethodPost, Name: "Apply", URL: base + "/apply"},
		},
	}

	return waypoint.Toolbox{push, hist}
}

func isLiteral(t route.Template) bool {
	return !strings.ContainsAny(string(t), ":*")
}
