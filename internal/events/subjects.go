package events

const (
	StreamName   = "AUTOEVAL_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectSessionCreated(sessionID string) string {
	return "autoeval.session." + sessionID + ".created"
}

func SubjectItemSaved(sessionID string) string {
	return "autoeval.session." + sessionID + ".item.saved"
}

func SubjectSessionEnded(sessionID string) string {
	return "autoeval.session." + sessionID + ".ended"
}

func SubjectReportExported(sessionID string) string {
	return "autoeval.session." + sessionID + ".report.exported"
}
