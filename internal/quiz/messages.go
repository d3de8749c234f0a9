package quiz

import "fmt"

const (
	MsgRestarted      = "Quiz restarted."
	MsgNothingParsed  = "Nothing parsed yet. Parse a PDF or paste text first."
	MsgExtractFailed  = "PDF read failed."
	MsgSessionCleared = "Temporary session cleared."
	MsgSaveDisabled   = "Session saving disabled."
	MsgSaveEnabled    = "Session saving enabled."
)

// ParsedDocumentMessage reports the yield of a document parse.
func ParsedDocumentMessage(n int) string {
	if n == 0 {
		return "Parsed 0 questions. Try paste mode."
	}
	return fmt.Sprintf("Parsed %d question(s). Ready to start.", n)
}

// ParsedTextMessage reports the yield of a pasted-text parse.
func ParsedTextMessage(n int) string {
	return fmt.Sprintf("Parsed %d from pasted text.", n)
}

func restoredMessage(n int) string {
	return fmt.Sprintf("Restored session with %d question(s).", n)
}
