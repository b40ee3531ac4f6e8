package audit

import "fmt"

// Cheatsheet operations
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// CheatsheetEvent records a cheatsheet write made through the editor API.
type CheatsheetEvent struct {
	UserID       string
	ClientIP     string
	Operation    string
	CheatsheetID string
	Slug         string
	Success      bool
	ErrorMessage string
}

func (e CheatsheetEvent) MessageID() string {
	return "cheatsheet"
}

func (e CheatsheetEvent) subject() string {
	switch {
	case e.Slug != "":
		return e.Slug
	case e.CheatsheetID != "":
		return e.CheatsheetID
	default:
		return "a cheatsheet"
	}
}

func (e CheatsheetEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd cheatsheet %s", e.UserID, e.Operation, e.subject())
	}
	msg := fmt.Sprintf("%s tried to %s cheatsheet %s", e.UserID, e.Operation, e.subject())
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e CheatsheetEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheatsheetEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheatsheetEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.CheatsheetID != "" {
		sd[SDIDSubject]["cheatsheet"] = e.CheatsheetID
	}
	if e.Slug != "" {
		sd[SDIDSubject]["slug"] = e.Slug
	}
	if len(sd[SDIDSubject]) == 0 {
		delete(sd, SDIDSubject)
	}
	return sd
}

// Session operations
const (
	OperationSignIn  = "sign-in"
	OperationSignOut = "sign-out"
)

// SessionEvent records a sign-in through the callback or a sign-out.
type SessionEvent struct {
	UserID       string
	ClientIP     string
	Operation    string
	Success      bool
	ErrorMessage string
}

func (e SessionEvent) MessageID() string {
	return "session"
}

func (e SessionEvent) Message() string {
	user := e.UserID
	if user == "" {
		user = "unknown user"
	}
	if e.Success {
		if e.Operation == OperationSignOut {
			return user + " signed out"
		}
		return user + " signed in"
	}
	msg := fmt.Sprintf("%s failed to %s", user, e.Operation)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e SessionEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e SessionEvent) Facility() int {
	return FacilityAuth
}

func (e SessionEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.UserID != "" {
		sd[SDIDAuth] = map[string]string{"user": e.UserID}
	}
	return sd
}
