package rbac

const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

const (
	PermParse    = "questions:parse"
	PermExport   = "questions:export"
	PermImport   = "questions:import"
	PermQuiz     = "quiz:play"
	PermClear    = "session:clear"
	PermEvents   = "events:view"
	PermSettings = "quiz:settings"
)

// RolePermissions is the default role table. A trailing "*" grants every
// permission with that prefix.
var RolePermissions = map[string][]string{
	RoleGuest: {
		PermParse,
		PermExport,
		PermImport,
		"quiz:*",
		PermClear,
	},
	RoleAdmin: {
		"*",
	},
}
