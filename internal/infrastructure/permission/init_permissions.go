package permission

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	ResourceTicket = "ticket"
	ResourceLog    = "log"
)

const (
	ActionCreate     = "create"
	ActionListOwn    = "list_own"
	ActionListAll    = "list_all"
	ActionReadOwn    = "read_own"
	ActionReadAny    = "read_any"
	ActionMessageOwn = "message_own"
	ActionMessageAny = "message_any"
	ActionResolve    = "resolve"
	ActionDelete     = "delete"
	ActionExport     = "export"
	ActionRead       = "read"
)

func DefaultPolicies() [][]string {
	return [][]string{
		{RoleAdmin, ResourceTicket, ActionListAll},
		{RoleAdmin, ResourceTicket, ActionReadAny},
		{RoleAdmin, ResourceTicket, ActionMessageAny},
		{RoleAdmin, ResourceTicket, ActionResolve},
		{RoleAdmin, ResourceTicket, ActionDelete},
		{RoleAdmin, ResourceTicket, ActionExport},
		{RoleAdmin, ResourceLog, ActionRead},

		{RoleUser, ResourceTicket, ActionCreate},
		{RoleUser, ResourceTicket, ActionListOwn},
		{RoleUser, ResourceTicket, ActionReadOwn},
		{RoleUser, ResourceTicket, ActionMessageOwn},
	}
}
