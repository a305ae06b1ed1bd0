package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:view",
		"correction:submit",
		"correction:status",
	},
	"teacher": {
		"quiz:create",
		"quiz:view",
		"correction:submit",
		"correction:status",
	},
	"admin": {
		"*", // everything
	},
}
