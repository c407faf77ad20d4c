// Package main - демонстрационный прогон реестра: наполняет хранилище
// образцами данных и показывает все основные операции без
// интерактивного ввода.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alem-hub/student-registry/config"
	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/application/manager"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/jsonfile"
	"github.com/alem-hub/student-registry/internal/observability"
	"github.com/alem-hub/student-registry/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.LevelWarn,
		Format: cfg.Log.Format,
	})

	store, err := jsonfile.New(jsonfile.Options{
		Path:      cfg.Storage.CollectionFile,
		BackupDir: cfg.Storage.BackupDir,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	m := manager.New(store, log, observability.New())
	ctx := context.Background()

	fmt.Println("    STUDENT MANAGEMENT SYSTEM - DEMO")
	fmt.Println()

	fmt.Println("1. Adding sample students:")
	for _, cmd := range sampleStudents() {
		out := m.AddStudent(ctx, cmd)
		fmt.Printf("   %s\n", out.Message)
	}
	fmt.Println()

	fmt.Println("2. Enrolling students in courses:")
	enrollments := []struct {
		id      string
		courses []string
	}{
		{"STU001", []string{"Data Structures", "Algorithms", "Database Systems"}},
		{"STU002", []string{"Calculus I", "Linear Algebra", "Statistics"}},
		{"STU003", []string{"Classical Mechanics", "Quantum Physics", "Thermodynamics"}},
	}
	for _, e := range enrollments {
		for _, course := range e.courses {
			if out := m.AddCourse(ctx, e.id, course); out.OK {
				fmt.Printf("   ✓ %s: %s\n", e.id, course)
			}
		}
	}
	fmt.Println()

	fmt.Println("3. Recording grades:")
	grades := []struct {
		id     string
		course string
		grade  float64
	}{
		{"STU001", "Data Structures", 3.7},
		{"STU001", "Algorithms", 3.8},
		{"STU001", "Database Systems", 3.9},
		{"STU002", "Calculus I", 3.5},
		{"STU002", "Linear Algebra", 3.7},
		{"STU002", "Statistics", 3.6},
		{"STU003", "Classical Mechanics", 4.0},
		{"STU003", "Quantum Physics", 3.8},
		{"STU003", "Thermodynamics", 3.9},
	}
	for _, g := range grades {
		if out := m.AddGrade(ctx, g.id, g.course, g.grade); out.OK {
			fmt.Printf("   ✓ %s: %s = %.1f\n", g.id, g.course, g.grade)
		}
	}
	fmt.Println()

	fmt.Println("4. Listing all students:")
	students, _ := m.ListStudents(ctx)
	for _, s := range students {
		fmt.Printf("   %-8s %-20s %-18s %.2f\n", s.StudentID, s.FullName, s.Major, s.GPA)
	}
	fmt.Println()

	fmt.Println("5. Students with GPA above 3.7:")
	gpaMin := 3.7
	matched, _ := m.SearchStudents(ctx, student.Criteria{GPAMin: &gpaMin})
	for _, s := range matched {
		fmt.Printf("   - %s (GPA: %.2f)\n", s.FullName, s.GPA)
	}
	fmt.Println()

	fmt.Println("6. Sample transcript:")
	if transcript, out := m.GetTranscript(ctx, "STU001"); out.OK {
		fmt.Printf("   Student: %s (ID: %s)\n", transcript.FullName, transcript.StudentID)
		fmt.Printf("   Major: %s\n", transcript.Major)
		fmt.Printf("   Overall GPA: %.2f\n", transcript.GPA)
		for _, entry := range transcript.Entries {
			fmt.Printf("      - %s: %.2f\n", entry.Course, entry.Grade)
		}
	}
	fmt.Println()

	fmt.Println("7. System statistics:")
	if stats, out := m.GetStatistics(ctx); out.OK {
		fmt.Printf("   Total Students: %d\n", stats.TotalStudents)
		fmt.Printf("   Average GPA: %.2f\n", stats.AverageGPA)
		for major, count := range stats.MajorDistribution {
			fmt.Printf("      - %s: %d\n", major, count)
		}
	}
	fmt.Println()

	fmt.Println("8. Top students by GPA:")
	top, _ := m.TopStudents(ctx, 10)
	for i, s := range top {
		fmt.Printf("   %d. %s (GPA: %.2f)\n", i+1, s.FullName, s.GPA)
	}
	fmt.Println()

	fmt.Println("9. Exporting to CSV:")
	out := m.ExportCSV(ctx, "students_export.csv")
	fmt.Printf("   %s\n", out.Message)

	return nil
}

func sampleStudents() []command.AddStudentCommand {
	return []command.AddStudentCommand{
		{
			ID:          "STU001",
			FirstName:   "Alice",
			LastName:    "Johnson",
			Email:       "alice.johnson@university.edu",
			Phone:       "(555) 123-4567",
			DateOfBirth: "2001-03-15",
			Address:     "123 Campus Drive",
			Major:       "Computer Science",
			GPA:         3.8,
		},
		{
			ID:          "STU002",
			FirstName:   "Bob",
			LastName:    "Smith",
			Email:       "bob.smith@university.edu",
			Phone:       "(555) 234-5678",
			DateOfBirth: "2000-07-22",
			Address:     "456 University Ave",
			Major:       "Mathematics",
			GPA:         3.6,
		},
		{
			ID:          "STU003",
			FirstName:   "Carol",
			LastName:    "Davis",
			Email:       "carol.davis@university.edu",
			Phone:       "(555) 345-6789",
			DateOfBirth: "2002-01-10",
			Address:     "789 College Street",
			Major:       "Physics",
			GPA:         3.9,
		},
	}
}
