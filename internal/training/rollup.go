package training

import (
	"math"
	"sort"

	"github.com/garnizeh/trainhub/pkg/models"
)

// The rollup functions are pure: they operate on an in-memory snapshot of
// progress rows and never touch storage. The query façade is responsible for
// fetching the snapshot.

// Snapshot is the row set a rollup computation works over. ModuleRefs maps
// every live module id to its program id; rows whose module is missing from
// the map are orphans (module hard-deleted after assignment) and are skipped.
type Snapshot struct {
	Rows       []models.Progress
	ModuleRefs map[int64]int64
}

// LiveRows returns the snapshot rows whose module still exists.
func (s Snapshot) LiveRows() []models.Progress {
	out := make([]models.Progress, 0, len(s.Rows))
	for _, row := range s.Rows {
		if _, ok := s.ModuleRefs[row.ModuleID]; ok {
			out = append(out, row)
		}
	}
	return out
}

// ProgramStatus derives the overall status of one (employee, program) pair
// from its progress rows: completed only when every module is completed,
// in_progress as soon as any module was started or finished.
func ProgramStatus(rows []models.Progress, totalModules int) models.Status {
	if totalModules <= 0 {
		return models.StatusNotStarted
	}

	completed := 0
	touched := 0
	for _, row := range rows {
		switch row.Status {
		case models.StatusCompleted:
			completed++
			touched++
		case models.StatusInProgress:
			touched++
		}
	}

	if completed == totalModules {
		return models.StatusCompleted
	}
	if touched > 0 {
		return models.StatusInProgress
	}
	return models.StatusNotStarted
}

// BuildAssignments groups an employee's live rows by program and rolls each
// group up into one assignment entry. Programs without a single row for this
// employee do not appear at all. Ordering is newest assignment first, using
// min(started_date) per program; groups that were never started fall back to
// row-creation order.
func BuildAssignments(snap Snapshot, programNames map[int64]string) []models.Assignment {
	type group struct {
		rows  []models.Progress
		minID int64
	}

	groups := make(map[int64]*group)
	for _, row := range snap.LiveRows() {
		g, ok := groups[row.ProgramID]
		if !ok {
			g = &group{minID: row.ID}
			groups[row.ProgramID] = g
		}
		if row.ID < g.minID {
			g.minID = row.ID
		}
		g.rows = append(g.rows, row)
	}

	type entry struct {
		assignment models.Assignment
		minID      int64
	}
	entries := make([]entry, 0, len(groups))
	for programID, g := range groups {
		completed := 0
		var assignedAt *int64
		for _, row := range g.rows {
			if row.Status == models.StatusCompleted {
				completed++
			}
			if row.Started != nil && (assignedAt == nil || *row.Started < *assignedAt) {
				v := *row.Started
				assignedAt = &v
			}
		}

		entries = append(entries, entry{
			assignment: models.Assignment{
				ProgramID:        programID,
				ProgramName:      programNames[programID],
				AssignedAt:       assignedAt,
				TotalModules:     len(g.rows),
				CompletedModules: completed,
				OverallStatus:    ProgramStatus(g.rows, len(g.rows)),
			},
			minID: g.minID,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.assignment.AssignedAt != nil && b.assignment.AssignedAt != nil:
			if *a.assignment.AssignedAt != *b.assignment.AssignedAt {
				return *a.assignment.AssignedAt > *b.assignment.AssignedAt
			}
			return a.minID > b.minID
		case a.assignment.AssignedAt != nil:
			return true
		case b.assignment.AssignedAt != nil:
			return false
		default:
			return a.minID > b.minID
		}
	})

	out := make([]models.Assignment, len(entries))
	for i, e := range entries {
		out[i] = e.assignment
	}
	return out
}

// SummarizeEmployee computes the employee's module and program rollups from
// the snapshot. Module counts are plain row counts, not deduplicated by
// program; the completion rate is 0 when no modules are assigned.
func SummarizeEmployee(emp models.Employee, snap Snapshot) models.EmployeeSummary {
	rows := snap.LiveRows()

	byProgram := make(map[int64][]models.Progress)
	totalModules := 0
	completedModules := 0
	for _, row := range rows {
		byProgram[row.ProgramID] = append(byProgram[row.ProgramID], row)
		totalModules++
		if row.Status == models.StatusCompleted {
			completedModules++
		}
	}

	completedPrograms := 0
	for _, programRows := range byProgram {
		if ProgramStatus(programRows, len(programRows)) == models.StatusCompleted {
			completedPrograms++
		}
	}

	return models.EmployeeSummary{
		Employee:          emp,
		AssignedPrograms:  len(byProgram),
		CompletedPrograms: completedPrograms,
		TotalModules:      totalModules,
		CompletedModules:  completedModules,
		CompletionRate:    completionRate(completedModules, totalModules),
	}
}

// DepartmentCompliance groups employee summaries by department. The
// compliance denominator counts only employees with at least one assignment;
// employees without a department land in the "No Department" bucket.
func DepartmentCompliance(summaries []models.EmployeeSummary) []models.DepartmentRollup {
	buckets := make(map[string]*models.DepartmentRollup)
	for _, s := range summaries {
		dept := s.Department
		if dept == "" {
			dept = "No Department"
		}
		b, ok := buckets[dept]
		if !ok {
			b = &models.DepartmentRollup{Department: dept}
			buckets[dept] = b
		}
		b.Employees++
		if s.AssignedPrograms > 0 {
			b.WithAssignment++
			if s.CompletedPrograms == s.AssignedPrograms {
				b.Compliant++
			}
		}
	}

	out := make([]models.DepartmentRollup, 0, len(buckets))
	for _, b := range buckets {
		b.ComplianceRate = completionRate(b.Compliant, b.WithAssignment)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// SummarizeCompletion buckets every employee by compliance standing.
func SummarizeCompletion(summaries []models.EmployeeSummary, totalPrograms int) models.CompletionSummary {
	c := models.CompletionSummary{
		TotalEmployees: len(summaries),
		TotalPrograms:  totalPrograms,
	}
	for _, s := range summaries {
		switch {
		case s.AssignedPrograms == 0:
			c.NoAssignments++
		case s.CompletedPrograms == s.AssignedPrograms:
			c.FullyCompliant++
		case s.CompletedPrograms > 0:
			c.PartiallyCompliant++
		default:
			c.NonCompliant++
		}
	}
	return c
}

// completionRate is round(100 * completed / total), with 0 guarding the
// zero-denominator case.
func completionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
