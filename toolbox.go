package waypoint

import "net/url"

// A Toolbox is a set of Tools the devtools server exposes
// in certain environments, notably, not in Production.
// Each Tool links to navigations a developer can trigger
// without driving a client through every intermediate step.
type Toolbox []Tool

// Filter returns a Toolbox after removing all Tools that cannot be rendered.
// If none can be rendered, Filter returns a zero-value Toolbox.
func (t Toolbox) Filter() Toolbox {
	var n int
	for _, tool := range t {
		if tool.Render() {
			t[n] = tool
			n++
		}
	}

	if n == 0 {
		return make(Toolbox, 0)
	}

	return t[:n]
}

// A Tool is a set of actions grouped under a category,
// e.g., all routes registered on a controller.
type Tool struct {
	Actions []ToolAction `json:"actions"`
	Title   string       `json:"title"`
}

// Render asserts whether the Tool should be rendered.
func (t Tool) Render() bool { return len(t.Actions) > 0 }

// A ToolAction is a specific endpoint the developer can call
// to execute the named navigation.
type ToolAction struct {
	Method string `json:"method"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

// NavigationAction constructs a ToolAction calling the endpoint at base
// with path as the navigation target.
func NavigationAction(name, method, base, path string) ToolAction {
	q := url.Values{}
	q.Set("url", path)

	return ToolAction{Method: method, Name: name, URL: base + "?" + q.Encode()}
}
