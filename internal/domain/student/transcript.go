package student

// ══════════════════════════════════════════════════════════════════════════════
// PROJECTION: ACADEMIC TRANSCRIPT
// ══════════════════════════════════════════════════════════════════════════════

// TranscriptEntry is one course line of a transcript. A course without a
// recorded grade is listed with Graded == false.
type TranscriptEntry struct {
	Course string
	Grade  float64
	Graded bool
}

// Transcript is a read-only academic summary of a single student,
// built for display and reporting.
type Transcript struct {
	StudentID      string
	FullName       string
	Major          string
	EnrollmentDate string
	GPA            float64
	Entries        []TranscriptEntry
}

// BuildTranscript projects the student's courses and grades into a
// transcript. Entries follow the enrollment order of Courses.
func BuildTranscript(s *Student) Transcript {
	entries := make([]TranscriptEntry, 0, len(s.Courses))
	for _, course := range s.Courses {
		grade, graded := s.Grades[course]
		entries = append(entries, TranscriptEntry{
			Course: course,
			Grade:  grade,
			Graded: graded,
		})
	}

	return Transcript{
		StudentID:      s.ID,
		FullName:       s.FullName(),
		Major:          s.DisplayMajor(),
		EnrollmentDate: s.EnrollmentDate,
		GPA:            s.GPA,
		Entries:        entries,
	}
}

// GradedCount returns the number of courses with a recorded grade.
func (t Transcript) GradedCount() int {
	n := 0
	for _, e := range t.Entries {
		if e.Graded {
			n++
		}
	}
	return n
}
