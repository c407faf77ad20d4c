// Package cli implements the interactive terminal front-end: a
// numbered menu over the manager's use cases with inline input
// validation. No flags, no subcommands; everything is a prompt.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/application/manager"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN MENU LOOP
// ══════════════════════════════════════════════════════════════════════════════

// App is the interactive registry session.
type App struct {
	manager *manager.Manager
	prompt  *prompter
	present presenter
	out     io.Writer
}

// New creates an interactive session over the given manager.
func New(m *manager.Manager, in io.Reader, out io.Writer) *App {
	return &App{
		manager: m,
		prompt:  newPrompter(in, out),
		present: presenter{out: out},
		out:     out,
	}
}

// Run drives the menu until the user exits or input ends. Context
// cancellation (Ctrl+C) ends the session between operations.
func (a *App) Run(ctx context.Context) error {
	a.printHeader()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out, "\nGoodbye!")
			return nil
		default:
		}

		a.printMenu()
		choice, err := a.prompt.ask("Enter your choice")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			fmt.Fprintln(a.out, "\nGoodbye!")
			return nil
		}

		if err := a.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out, "\nGoodbye!")
				return nil
			}
			return err
		}
	}
}

func (a *App) printHeader() {
	fmt.Fprintln(a.out, strings.Repeat("=", 60))
	fmt.Fprintln(a.out, "          STUDENT MANAGEMENT SYSTEM")
	fmt.Fprintln(a.out, strings.Repeat("=", 60))
	fmt.Fprintln(a.out)
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "\nMAIN MENU:")
	a.present.line(30)
	fmt.Fprintln(a.out, "1.  Add New Student")
	fmt.Fprintln(a.out, "2.  View Student Details")
	fmt.Fprintln(a.out, "3.  Update Student Information")
	fmt.Fprintln(a.out, "4.  Delete Student")
	fmt.Fprintln(a.out, "5.  List All Students")
	fmt.Fprintln(a.out, "6.  Search Students")
	fmt.Fprintln(a.out, "7.  Add Course to Student")
	fmt.Fprintln(a.out, "8.  Remove Course from Student")
	fmt.Fprintln(a.out, "9.  Add Grade to Student")
	fmt.Fprintln(a.out, "10. View Student Transcript")
	fmt.Fprintln(a.out, "11. View System Statistics")
	fmt.Fprintln(a.out, "12. Export Data to CSV")
	fmt.Fprintln(a.out, "13. Import Data from CSV")
	fmt.Fprintln(a.out, "14. View Top Students")
	fmt.Fprintln(a.out, "15. View Students Needing Attention")
	fmt.Fprintln(a.out, "0.  Exit")
	a.present.line(30)
}

func (a *App) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return a.addStudent(ctx)
	case "2":
		return a.viewStudent(ctx)
	case "3":
		return a.updateStudent(ctx)
	case "4":
		return a.deleteStudent(ctx)
	case "5":
		return a.listStudents(ctx)
	case "6":
		return a.searchStudents(ctx)
	case "7":
		return a.addCourse(ctx)
	case "8":
		return a.removeCourse(ctx)
	case "9":
		return a.addGrade(ctx)
	case "10":
		return a.viewTranscript(ctx)
	case "11":
		return a.viewStatistics(ctx)
	case "12":
		return a.exportCSV(ctx)
	case "13":
		return a.importCSV(ctx)
	case "14":
		return a.viewTopStudents(ctx)
	case "15":
		return a.viewNeedingAttention(ctx)
	default:
		fmt.Fprintln(a.out, "Invalid choice. Please select 0-15.")
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Menu actions
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) addStudent(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nADD NEW STUDENT")
	a.present.line(20)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}
	firstName, err := a.prompt.askRequired("First Name")
	if err != nil {
		return err
	}
	lastName, err := a.prompt.askRequired("Last Name")
	if err != nil {
		return err
	}
	email, err := a.prompt.askRequired("Email")
	if err != nil {
		return err
	}
	phone, err := a.prompt.askRequired("Phone")
	if err != nil {
		return err
	}
	dob, err := a.prompt.askDate("Date of Birth")
	if err != nil {
		return err
	}
	address, err := a.prompt.askOptional("Address")
	if err != nil {
		return err
	}
	major, err := a.prompt.askOptional("Major")
	if err != nil {
		return err
	}
	gpa, err := a.prompt.askFloat("GPA", student.MinGPA, student.MaxGPA, 0.0)
	if err != nil {
		return err
	}

	out := a.manager.AddStudent(ctx, command.AddStudentCommand{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       phone,
		DateOfBirth: dob,
		Address:     address,
		Major:       major,
		GPA:         gpa,
	})
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) viewStudent(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nVIEW STUDENT DETAILS")
	a.present.line(20)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}

	s, out := a.manager.GetStudent(ctx, id)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	fmt.Fprintf(a.out, "\n%s\n", out.Message)
	a.present.studentDetails(*s)
	return nil
}

func (a *App) updateStudent(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nUPDATE STUDENT INFORMATION")
	a.present.line(30)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}

	s, out := a.manager.GetStudent(ctx, id)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}

	fmt.Fprintf(a.out, "\nCurrent information for %s:\n", s.FullName)
	fmt.Fprintf(a.out, "Email: %s\n", s.Email)
	fmt.Fprintf(a.out, "Phone: %s\n", s.Phone)
	fmt.Fprintf(a.out, "Address: %s\n", s.Address)
	fmt.Fprintf(a.out, "Major: %s\n", s.Major)
	fmt.Fprintln(a.out, "\nEnter new values (leave empty to keep current):")

	cmd := command.UpdateStudentCommand{StudentID: id}
	fields := []struct {
		label  string
		target **string
	}{
		{"First Name", &cmd.FirstName},
		{"Last Name", &cmd.LastName},
		{"Email", &cmd.Email},
		{"Phone", &cmd.Phone},
		{"Address", &cmd.Address},
		{"Major", &cmd.Major},
	}
	for _, f := range fields {
		value, err := a.prompt.ask(f.label)
		if err != nil {
			return err
		}
		if value != "" {
			v := value
			*f.target = &v
		}
	}

	out = a.manager.UpdateStudent(ctx, cmd)
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) deleteStudent(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nDELETE STUDENT")
	a.present.line(20)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}

	confirm, err := a.prompt.ask("Are you sure? (yes/no)")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") && !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(a.out, "Deletion cancelled.")
		return nil
	}

	out := a.manager.DeleteStudent(ctx, id)
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) listStudents(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nALL STUDENTS")
	a.present.line(20)

	students, out := a.manager.ListStudents(ctx)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	a.present.studentTable(students)
	return nil
}

func (a *App) searchStudents(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nSEARCH STUDENTS")
	a.present.line(20)
	fmt.Fprintln(a.out, "Enter search criteria (leave empty to skip):")

	criteria := student.Criteria{}

	name, err := a.prompt.ask("Name contains")
	if err != nil {
		return err
	}
	criteria.Name = name

	major, err := a.prompt.ask("Major contains")
	if err != nil {
		return err
	}
	criteria.Major = major

	email, err := a.prompt.ask("Email contains")
	if err != nil {
		return err
	}
	criteria.Email = email

	gpaMinRaw, err := a.prompt.ask("Minimum GPA")
	if err != nil {
		return err
	}
	if gpaMinRaw != "" {
		if v, ok := parseFloatInput(a, gpaMinRaw); ok {
			criteria.GPAMin = &v
		}
	}

	gpaMaxRaw, err := a.prompt.ask("Maximum GPA")
	if err != nil {
		return err
	}
	if gpaMaxRaw != "" {
		if v, ok := parseFloatInput(a, gpaMaxRaw); ok {
			criteria.GPAMax = &v
		}
	}

	ageMinRaw, err := a.prompt.ask("Minimum Age")
	if err != nil {
		return err
	}
	if ageMinRaw != "" {
		if v, ok := parseIntInput(a, ageMinRaw); ok {
			criteria.AgeMin = &v
		}
	}

	ageMaxRaw, err := a.prompt.ask("Maximum Age")
	if err != nil {
		return err
	}
	if ageMaxRaw != "" {
		if v, ok := parseIntInput(a, ageMaxRaw); ok {
			criteria.AgeMax = &v
		}
	}

	students, out := a.manager.SearchStudents(ctx, criteria)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	fmt.Fprintf(a.out, "\n%s\n\n", out.Message)
	a.present.studentTable(students)
	return nil
}

func (a *App) addCourse(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nADD COURSE TO STUDENT")
	a.present.line(25)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}
	course, err := a.prompt.askRequired("Course Name")
	if err != nil {
		return err
	}

	out := a.manager.AddCourse(ctx, id, course)
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) removeCourse(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nREMOVE COURSE FROM STUDENT")
	a.present.line(30)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}
	course, err := a.prompt.askRequired("Course Name")
	if err != nil {
		return err
	}

	out := a.manager.RemoveCourse(ctx, id, course)
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) addGrade(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nADD GRADE TO STUDENT")
	a.present.line(25)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}
	course, err := a.prompt.askRequired("Course Name")
	if err != nil {
		return err
	}
	grade, err := a.prompt.askFloat("Grade", student.MinGPA, student.MaxGPA, 0.0)
	if err != nil {
		return err
	}

	out := a.manager.AddGrade(ctx, id, course, grade)
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) viewTranscript(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nVIEW STUDENT TRANSCRIPT")
	a.present.line(25)

	id, err := a.prompt.askRequired("Student ID")
	if err != nil {
		return err
	}

	t, out := a.manager.GetTranscript(ctx, id)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	a.present.transcript(*t)
	return nil
}

func (a *App) viewStatistics(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nSYSTEM STATISTICS")
	a.present.line(20)

	stats, out := a.manager.GetStatistics(ctx)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	a.present.statistics(stats)
	return nil
}

func (a *App) exportCSV(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nEXPORT DATA TO CSV")
	a.present.line(20)

	path, err := a.prompt.ask("Export file name (default: students_export.csv)")
	if err != nil {
		return err
	}
	if path == "" {
		path = "students_export.csv"
	}

	out := a.manager.ExportCSV(ctx, path)
	a.present.outcome(out.OK, out.Message)
	return nil
}

func (a *App) importCSV(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nIMPORT DATA FROM CSV")
	a.present.line(20)

	path, err := a.prompt.askRequired("Import file name")
	if err != nil {
		return err
	}

	result, out := a.manager.ImportCSV(ctx, path)
	a.present.outcome(out.OK, out.Message)
	for _, failure := range result.Failures {
		fmt.Fprintf(a.out, "  - %s\n", failure)
	}
	return nil
}

func (a *App) viewTopStudents(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nTOP STUDENTS BY GPA")
	a.present.line(25)

	limit, err := a.prompt.askInt("How many students to show (default: 10)", 10)
	if err != nil {
		return err
	}

	students, out := a.manager.TopStudents(ctx, limit)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	a.present.studentTable(students)
	return nil
}

func (a *App) viewNeedingAttention(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nSTUDENTS NEEDING ATTENTION (GPA <= 1.99)")
	a.present.line(40)

	students, out := a.manager.StudentsNeedingAttention(ctx)
	if !out.OK {
		a.present.outcome(false, out.Message)
		return nil
	}
	a.present.studentTable(students)
	return nil
}

// parseFloatInput parses a numeric search bound, warning on bad input.
func parseFloatInput(a *App, raw string) (float64, bool) {
	var v float64
	if _, err := fmt.Sscanf(raw, "%g", &v); err != nil {
		fmt.Fprintln(a.out, "Ignoring invalid number:", raw)
		return 0, false
	}
	return v, true
}

// parseIntInput parses an integer search bound, warning on bad input.
func parseIntInput(a *App, raw string) (int, bool) {
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		fmt.Fprintln(a.out, "Ignoring invalid number:", raw)
		return 0, false
	}
	return v, true
}
