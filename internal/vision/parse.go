package vision

import "strings"

// ExtractedFields is the structured result of one document-capture attempt.
// It is ephemeral: reconciled, snapshotted into the audit log, then dropped.
type ExtractedFields struct {
	Name        string `json:"name,omitempty"`
	StudentID   string `json:"student_id,omitempty"`
	CollegeName string `json:"college_name,omitempty"`
	// RawConfidence is a completeness heuristic (fields found / fields
	// attempted), not a correctness measure.
	RawConfidence float64 `json:"-"`
}

func (f ExtractedFields) Empty() bool {
	return f.Name == "" && f.StudentID == "" && f.CollegeName == ""
}

// fieldsAttempted is the number of labels the parser scans for.
const fieldsAttempted = 3

// ParseIDCardText scans the OCR output line by line for recognized label
// markers and takes the trimmed substring after the first colon. When
// multiple lines carry the same label the last one wins.
func ParseIDCardText(raw string) ExtractedFields {
	var out ExtractedFields

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "name:") {
			out.Name = valueAfterColon(line)
		}
		if strings.Contains(lower, "id:") || strings.Contains(lower, "student id:") {
			out.StudentID = valueAfterColon(line)
		}
		if strings.Contains(lower, "college:") || strings.Contains(lower, "university:") {
			out.CollegeName = valueAfterColon(line)
		}
	}

	found := 0
	for _, v := range []string{out.Name, out.StudentID, out.CollegeName} {
		if v != "" {
			found++
		}
	}
	out.RawConfidence = float64(found) / fieldsAttempted
	return out
}

func valueAfterColon(line string) string {
	if i := strings.IndexByte(line, ':'); i != -1 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}
