package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":            {"ctrl+b", "show/hide commands"},
	"QuitApp":             {"q", "quit"},
	"GoDashboard":         {"1", "dashboard"},
	"GoTodos":             {"2", "todo list"},
	"GoBoard":             {"3", "kanban board"},
	"GoProfile":           {"4", "profile"},
	"GoAdmin":             {"5", "admin console"},
	"Refresh":             {"r", "refresh from server"},
	"Logout":              {"ctrl+l", "log out"},
	"ToggleStatus":        {"space", "toggle completed"},
	"AdvanceStatus":       {"enter", "advance status"},
	"AddTask":             {"a", "add task"},
	"EditTask":            {"e", "edit task"},
	"DeleteTask":          {"d", "delete task"},
	"SearchTasks":         {"/", "search tasks"},
	"CycleBucket":         {"b", "cycle all/today/completed/overdue"},
	"CycleStatusFilter":   {"f", "cycle status filter"},
	"CycleCategoryFilter": {"c", "cycle category filter"},
	"CyclePriorityFilter": {"p", "cycle priority filter"},
	"ToggleSortBy":        {"s", "cycle sort by"},
	"ToggleSortOrder":     {"o", "toggle sort order"},
	"NextPage":            {"right", "next page"},
	"PrevPage":            {"left", "previous page"},
	"MoveCardLeft":        {"shift+left", "move card to previous column"},
	"MoveCardRight":       {"shift+right", "move card to next column"},
	"ColumnLeft":          {"h", "previous column"},
	"ColumnRight":         {"l", "next column"},
	"AdminNextTab":        {"tab", "next admin tab"},
	"AssignTask":          {"A", "assign task to user"},
	"ToggleUserActive":    {"t", "activate/deactivate user"},
	"AddUser":             {"a", "add user"},
}

type KeyMap struct {
	ShowHelp            key.Binding
	QuitApp             key.Binding
	GoDashboard         key.Binding
	GoTodos             key.Binding
	GoBoard             key.Binding
	GoProfile           key.Binding
	GoAdmin             key.Binding
	Refresh             key.Binding
	Logout              key.Binding
	ToggleStatus        key.Binding
	AdvanceStatus       key.Binding
	AddTask             key.Binding
	EditTask            key.Binding
	DeleteTask          key.Binding
	SearchTasks         key.Binding
	CycleBucket         key.Binding
	CycleStatusFilter   key.Binding
	CycleCategoryFilter key.Binding
	CyclePriorityFilter key.Binding
	ToggleSortBy        key.Binding
	ToggleSortOrder     key.Binding
	NextPage            key.Binding
	PrevPage            key.Binding
	MoveCardLeft        key.Binding
	MoveCardRight       key.Binding
	ColumnLeft          key.Binding
	ColumnRight         key.Binding
	AdminNextTab        key.Binding
	AssignTask          key.Binding
	ToggleUserActive    key.Binding
	AddUser             key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[action]; exists && override != "" {
			keyStr = override
		}

		switch action {
		case "ShowHelp":
			km.ShowHelp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "QuitApp":
			km.QuitApp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "GoDashboard":
			km.GoDashboard = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "GoTodos":
			km.GoTodos = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "GoBoard":
			km.GoBoard = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "GoProfile":
			km.GoProfile = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "GoAdmin":
			km.GoAdmin = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Refresh":
			km.Refresh = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Logout":
			km.Logout = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleStatus":
			km.ToggleStatus = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AdvanceStatus":
			km.AdvanceStatus = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddTask":
			km.AddTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "EditTask":
			km.EditTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "DeleteTask":
			km.DeleteTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "SearchTasks":
			km.SearchTasks = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CycleBucket":
			km.CycleBucket = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CycleStatusFilter":
			km.CycleStatusFilter = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CycleCategoryFilter":
			km.CycleCategoryFilter = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CyclePriorityFilter":
			km.CyclePriorityFilter = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleSortBy":
			km.ToggleSortBy = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleSortOrder":
			km.ToggleSortOrder = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "NextPage":
			km.NextPage = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "PrevPage":
			km.PrevPage = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "MoveCardLeft":
			km.MoveCardLeft = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "MoveCardRight":
			km.MoveCardRight = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ColumnLeft":
			km.ColumnLeft = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ColumnRight":
			km.ColumnRight = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AdminNextTab":
			km.AdminNextTab = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AssignTask":
			km.AssignTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleUserActive":
			km.ToggleUserActive = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddUser":
			km.AddUser = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
