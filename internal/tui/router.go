package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RouteKind identifies a screen
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteMyRecipes
	RouteDetail
	RouteAdd
	RoutePlanner
	RouteGrocery
	RouteProfile
	RouteSaved
	RouteInstruction
	RouteCompletion
	RouteCategory
)

// Route addresses a screen plus its arguments. Routes round-trip through
// path strings so navigation targets can live in key bindings and logs.
type Route struct {
	Kind         RouteKind
	RecipeID     int
	CategoryName string
}

// ParseRoute resolves a path string into a Route. Unknown paths fall back
// to home; a missing numeric argument parses as 0 and a missing string
// argument as "".
func ParseRoute(path string) Route {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch parts[0] {
	case "", "home":
		return Route{Kind: RouteHome}
	case "my_recipe":
		return Route{Kind: RouteMyRecipes}
	case "detail_recipe":
		return Route{Kind: RouteDetail, RecipeID: intArg(parts, 1)}
	case "add":
		return Route{Kind: RouteAdd}
	case "planner":
		return Route{Kind: RoutePlanner}
	case "grocery":
		return Route{Kind: RouteGrocery}
	case "profile":
		return Route{Kind: RouteProfile}
	case "saved_recipe":
		return Route{Kind: RouteSaved}
	case "instruction":
		return Route{Kind: RouteInstruction, RecipeID: intArg(parts, 1)}
	case "recipe_completion":
		return Route{Kind: RouteCompletion, RecipeID: intArg(parts, 1)}
	case "category":
		return Route{Kind: RouteCategory, CategoryName: stringArg(parts, 1)}
	}
	return Route{Kind: RouteHome}
}

func intArg(parts []string, idx int) int {
	if idx >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[idx])
	if err != nil {
		return 0
	}
	return n
}

func stringArg(parts []string, idx int) string {
	if idx >= len(parts) {
		return ""
	}
	if unescaped, err := url.PathUnescape(parts[idx]); err == nil {
		return unescaped
	}
	return parts[idx]
}

// Path renders the route back into its path string
func (r Route) Path() string {
	switch r.Kind {
	case RouteHome:
		return "/home"
	case RouteMyRecipes:
		return "/my_recipe"
	case RouteDetail:
		return fmt.Sprintf("/detail_recipe/%d", r.RecipeID)
	case RouteAdd:
		return "/add"
	case RoutePlanner:
		return "/planner"
	case RouteGrocery:
		return "/grocery"
	case RouteProfile:
		return "/profile"
	case RouteSaved:
		return "/saved_recipe"
	case RouteInstruction:
		return fmt.Sprintf("/instruction/%d", r.RecipeID)
	case RouteCompletion:
		return fmt.Sprintf("/recipe_completion/%d", r.RecipeID)
	case RouteCategory:
		return "/category/" + url.PathEscape(r.CategoryName)
	}
	return "/home"
}

// String implements fmt.Stringer for log output
func (r Route) String() string {
	return r.Path()
}

// RouteStack manages the navigation history. The bottom entry is always
// the home route; popping at the root is a no-op.
type RouteStack struct {
	routes      []Route
	cursorStack []int // Saved cursor positions for back navigation
}

// NewRouteStack creates a stack seeded with the home route
func NewRouteStack() *RouteStack {
	return &RouteStack{
		routes: []Route{{Kind: RouteHome}},
	}
}

// Len returns the number of routes in the stack
func (rs *RouteStack) Len() int {
	return len(rs.routes)
}

// Current returns the route on top of the stack
func (rs *RouteStack) Current() Route {
	return rs.routes[len(rs.routes)-1]
}

// Push adds a route to the stack, saving the cursor position of the
// screen being navigated away from
func (rs *RouteStack) Push(route Route, saveCursor int) {
	rs.cursorStack = append(rs.cursorStack, saveCursor)
	rs.routes = append(rs.routes, route)
}

// Pop removes the top route and returns the route now on top along with
// the cursor position saved when it was navigated away from. Returns
// ok=false at the root.
func (rs *RouteStack) Pop() (route Route, savedCursor int, ok bool) {
	if len(rs.routes) <= 1 {
		// Don't pop the home route
		return rs.Current(), 0, false
	}

	rs.routes = rs.routes[:len(rs.routes)-1]

	if len(rs.cursorStack) > 0 {
		savedCursor = rs.cursorStack[len(rs.cursorStack)-1]
		rs.cursorStack = rs.cursorStack[:len(rs.cursorStack)-1]
	}

	return rs.Current(), savedCursor, true
}

// Replace swaps the top route without growing the stack
func (rs *RouteStack) Replace(route Route) {
	rs.routes[len(rs.routes)-1] = route
}

// Reset clears the history back to a single root route
func (rs *RouteStack) Reset(route Route) {
	rs.routes = rs.routes[:0]
	rs.routes = append(rs.routes, route)
	rs.cursorStack = nil
}

// CanGoBack returns true if we can navigate back (not at root)
func (rs *RouteStack) CanGoBack() bool {
	return len(rs.routes) > 1
}

// Depth returns the navigation depth (0 = root, 1 = first drill, etc.)
func (rs *RouteStack) Depth() int {
	return len(rs.routes) - 1
}
