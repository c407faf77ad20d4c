package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alem-hub/student-registry/internal/application/query"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// OUTPUT PRESENTER
// Форматирование записей, выписок и статистики для терминала.
// ══════════════════════════════════════════════════════════════════════════════

type presenter struct {
	out io.Writer
}

// outcome prints a single-line operation result with a ✓/✗ prefix.
func (p presenter) outcome(ok bool, message string) {
	if ok {
		fmt.Fprintf(p.out, "\n✓ %s\n", message)
	} else {
		fmt.Fprintf(p.out, "\n✗ %s\n", message)
	}
}

func (p presenter) line(width int) {
	fmt.Fprintln(p.out, strings.Repeat("-", width))
}

// studentDetails prints the full record of one student.
func (p presenter) studentDetails(s query.StudentDTO) {
	p.line(40)
	fmt.Fprintf(p.out, "Student ID: %s\n", s.StudentID)
	fmt.Fprintf(p.out, "Name: %s\n", s.FullName)
	fmt.Fprintf(p.out, "Email: %s\n", s.Email)
	fmt.Fprintf(p.out, "Phone: %s\n", s.Phone)
	fmt.Fprintf(p.out, "Date of Birth: %s\n", s.DateOfBirth)
	fmt.Fprintf(p.out, "Age: %d\n", s.Age)
	if s.Address != "" {
		fmt.Fprintf(p.out, "Address: %s\n", s.Address)
	} else {
		fmt.Fprintln(p.out, "Address: Not provided")
	}
	fmt.Fprintf(p.out, "Major: %s\n", s.Major)
	fmt.Fprintf(p.out, "GPA: %.2f\n", s.GPA)
	fmt.Fprintf(p.out, "Enrollment Date: %s\n", s.EnrollmentDate)

	if len(s.Courses) > 0 {
		fmt.Fprintf(p.out, "Courses: %s\n", strings.Join(s.Courses, ", "))
	} else {
		fmt.Fprintln(p.out, "Courses: None enrolled")
	}

	if len(s.Grades) > 0 {
		fmt.Fprintln(p.out, "Grades:")
		courses := make([]string, 0, len(s.Grades))
		for c := range s.Grades {
			courses = append(courses, c)
		}
		sort.Strings(courses)
		for _, c := range courses {
			fmt.Fprintf(p.out, "  - %s: %.2f\n", c, s.Grades[c])
		}
	} else {
		fmt.Fprintln(p.out, "Grades: No grades recorded")
	}
}

// studentTable prints a compact one-line-per-student table.
func (p presenter) studentTable(students []query.StudentDTO) {
	if len(students) == 0 {
		fmt.Fprintln(p.out, "No students to display.")
		return
	}

	fmt.Fprintf(p.out, "%-10s %-25s %-20s %-6s %-4s\n", "ID", "Name", "Major", "GPA", "Age")
	p.line(70)
	for _, s := range students {
		fmt.Fprintf(p.out, "%-10s %-25s %-20s %-6.2f %-4d\n",
			s.StudentID, s.FullName, s.Major, s.GPA, s.Age)
	}
	fmt.Fprintf(p.out, "\nTotal: %d student(s)\n", len(students))
}

// transcript prints an academic transcript.
func (p presenter) transcript(t student.Transcript) {
	p.line(40)
	fmt.Fprintf(p.out, "TRANSCRIPT: %s (%s)\n", t.FullName, t.StudentID)
	fmt.Fprintf(p.out, "Major: %s\n", t.Major)
	fmt.Fprintf(p.out, "Enrolled: %s\n", t.EnrollmentDate)
	p.line(40)

	if len(t.Entries) == 0 {
		fmt.Fprintln(p.out, "No courses enrolled.")
	}
	for _, e := range t.Entries {
		if e.Graded {
			fmt.Fprintf(p.out, "%-30s %.2f\n", e.Course, e.Grade)
		} else {
			fmt.Fprintf(p.out, "%-30s %s\n", e.Course, "In Progress")
		}
	}

	p.line(40)
	fmt.Fprintf(p.out, "Overall GPA: %.2f (%d graded course(s))\n", t.GPA, t.GradedCount())
}

// statistics prints the aggregate collection statistics.
func (p presenter) statistics(stats *query.GetStatisticsResult) {
	p.line(40)
	fmt.Fprintf(p.out, "Total Students: %d\n", stats.TotalStudents)
	fmt.Fprintf(p.out, "Average GPA: %.2f\n", stats.AverageGPA)

	fmt.Fprintln(p.out, "\nStudents by Major:")
	majors := make([]string, 0, len(stats.MajorDistribution))
	for m := range stats.MajorDistribution {
		majors = append(majors, m)
	}
	sort.Strings(majors)
	for _, m := range majors {
		fmt.Fprintf(p.out, "  %-25s %d\n", m, stats.MajorDistribution[m])
	}

	fmt.Fprintln(p.out, "\nAge Distribution:")
	for _, bucket := range []string{
		query.Bucket18to20, query.Bucket21to25, query.Bucket26to30, query.Bucket30Plus,
	} {
		fmt.Fprintf(p.out, "  %-8s %d\n", bucket, stats.AgeBuckets[bucket])
	}
}
