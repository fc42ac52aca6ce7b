package domain

// allowedTransitions holds every legal status edge. ACCEPTED and REJECTED
// are terminal and have no entries.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusSubmitted:    {ApplicationStatusReviewing, ApplicationStatusRejected},
	ApplicationStatusReviewing:    {ApplicationStatusInterviewing, ApplicationStatusRejected},
	ApplicationStatusInterviewing: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

// IsValidTransition reports whether an application may move from one status
// to another. It is total: any pair outside the table, including unknown
// statuses and self-transitions, is denied.
func IsValidTransition(from, to ApplicationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status has no outgoing transitions.
func IsTerminalStatus(s ApplicationStatus) bool {
	return len(allowedTransitions[s]) == 0
}
