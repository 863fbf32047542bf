package entities

// RouteClass is the classification tier a request path falls into. The five
// values are mutually exclusive; classification is computed once per request.
type RouteClass string

const (
	RoutePublic     RouteClass = "public"
	RouteAuthPage   RouteClass = "auth_page"
	RouteInvitePage RouteClass = "invite_page"
	RouteAPI        RouteClass = "api"
	RouteProtected  RouteClass = "protected"
)

// AccessAction is the terminal outcome of the route guard for one request.
type AccessAction string

const (
	ActionAllow    AccessAction = "allow"
	ActionRedirect AccessAction = "redirect"
)

// AccessDecision is produced by the guard. A redirect short-circuits all
// downstream handlers; Location is only meaningful for ActionRedirect.
type AccessDecision struct {
	Action   AccessAction
	Location string
}
