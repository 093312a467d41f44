package session

import (
	"pathedit/internal/errors"
	"pathedit/internal/model"
)

// Notice is a blocking message for the operator.
type Notice struct {
	Title string
	Body  string
	Error bool
}

// FailureNotice describes err for the operator. The body is the error text
// without its code.
func FailureNotice(err error) Notice {
	n := Notice{Body: errors.Message(err), Error: true}
	switch errors.GetCode(err) {
	case errors.ErrNotElevated:
		n.Title = "Administrator required"
	case errors.ErrMoveFiltered:
		n.Title = "Move disabled while filtering"
		n.Error = false
	case errors.ErrLaunch:
		n.Title = "Restart failed"
	default:
		n.Title = "Save failed"
	}
	return n
}

// SavedNotice confirms a successful Save of scope.
func SavedNotice(scope model.Scope) Notice {
	return Notice{
		Title: "Saved",
		Body:  scope.String() + " PATH saved. New terminals/apps will see the change.",
	}
}

// SavedAllNotice confirms a successful SaveAll.
func SavedAllNotice(elevated bool) Notice {
	if elevated {
		return Notice{Title: "Saved", Body: "User and System PATH saved."}
	}
	return Notice{
		Title: "Saved",
		Body:  "User PATH saved. System PATH was skipped because this process is not elevated.",
	}
}
