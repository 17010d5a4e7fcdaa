package format

// Color names understood by the dashboard's badge component.
const (
	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorError   = "error"
	ColorDefault = "default"
)

// StatusText translates a listing status for display.
func StatusText(status string) string {
	switch status {
	case "pending":
		return "На модерации"
	case "approved":
		return "Одобрено"
	case "rejected":
		return "Отклонено"
	case "draft":
		return "Черновик"
	default:
		return status
	}
}

// StatusColor maps a listing status to a badge color.
func StatusColor(status string) string {
	switch status {
	case "approved":
		return ColorSuccess
	case "pending":
		return ColorWarning
	case "rejected":
		return ColorError
	default:
		return ColorDefault
	}
}

// ActionText translates a moderation history action.
func ActionText(action string) string {
	switch action {
	case "approved":
		return "Одобрено"
	case "rejected":
		return "Отклонено"
	case "requestChanges":
		return "Доработка"
	default:
		return action
	}
}
