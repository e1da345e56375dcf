// Package phase derives an employee's current onboarding phase from their
// calendar milestones. Current is a pure function: no I/O, no clock access,
// the caller supplies "today".
package phase

import (
	"strings"
	"time"
)

// Phase is one of the fixed onboarding phase labels. The values are the
// Portuguese display strings used everywhere the phase is shown or exported.
type Phase string

const (
	PhaseIntegration     Phase = "Integração"
	PhaseNormative       Phase = "Normativo"
	PhaseTechnicalCourse Phase = "Curso Técnico"
	PhaseDouble          Phase = "Duplado"
	PhaseOperation       Phase = "Operação"
	PhaseLoading         Phase = "Carregamento"
	PhasePlanned         Phase = "Previsto"
	PhaseNone            Phase = "Sem Fase Ativa"
)

// All lists every phase label in evaluation-priority order. Dashboards and
// reports iterate this to keep a stable, non-alphabetical ordering.
var All = []Phase{
	PhaseIntegration,
	PhaseNormative,
	PhaseTechnicalCourse,
	PhaseDouble,
	PhaseOperation,
	PhaseLoading,
	PhasePlanned,
	PhaseNone,
}

// Snapshot is a read-only view of the milestone fields Current consumes.
// Any of the date pointers may be nil, and the values may carry a time-of-day
// component; Current normalizes everything to calendar dates before comparing.
type Snapshot struct {
	IntegrationStart     *time.Time
	IntegrationEnd       *time.Time
	NormativeStart       *time.Time
	NormativeEnd         *time.Time
	TechnicalCourseStart *time.Time
	TechnicalCourseEnd   *time.Time
	DoubleStart          *time.Time
	DoubleEnd            *time.Time
	LoadingDate          *time.Time
	FieldOperationDate   *time.Time
	CourseStatus         string
}

type dateRange struct {
	label Phase
	start *time.Time
	end   *time.Time
}

// Current returns the phase label for the snapshot on the given day.
//
// Evaluation order is the business rule and must not be reordered:
//  1. the first active range among Integration, Normative, Technical Course,
//     Double (both bounds present and start <= today <= end) wins;
//  2. Operation, when the field-operation date has been reached, the course
//     is concluded, and loading (if any) did not come after it;
//  3. Loading, when the loading date has been reached and follows the end of
//     the Double range;
//  4. Planned, when every present milestone is strictly in the future and at
//     least one complete range exists;
//  5. Planned, when any range start is strictly in the future;
//  6. otherwise no active phase.
func Current(s Snapshot, today time.Time) Phase {
	// Single normalization boundary: everything becomes a calendar date here
	// and all comparisons below operate on whole days.
	day := toDate(&today)

	ranges := []dateRange{
		{PhaseIntegration, datePtr(s.IntegrationStart), datePtr(s.IntegrationEnd)},
		{PhaseNormative, datePtr(s.NormativeStart), datePtr(s.NormativeEnd)},
		{PhaseTechnicalCourse, datePtr(s.TechnicalCourseStart), datePtr(s.TechnicalCourseEnd)},
		{PhaseDouble, datePtr(s.DoubleStart), datePtr(s.DoubleEnd)},
	}
	loading := datePtr(s.LoadingDate)
	fieldOp := datePtr(s.FieldOperationDate)

	for _, r := range ranges {
		if r.start != nil && r.end != nil && !day.Before(*r.start) && !day.After(*r.end) {
			return r.label
		}
	}

	if fieldOp != nil && !day.Before(*fieldOp) && courseConcluded(s.CourseStatus) {
		if loading == nil || !fieldOp.Before(*loading) {
			return PhaseOperation
		}
	}

	if loading != nil && !day.Before(*loading) {
		doubleEnd := ranges[3].end
		if doubleEnd != nil && !loading.Before(*doubleEnd) {
			return PhaseLoading
		}
	}

	allFuture := true
	hasCompleteRange := false
	for _, r := range ranges {
		if r.start != nil && !r.start.After(day) {
			allFuture = false
		}
		if r.end != nil && !r.end.After(day) {
			allFuture = false
		}
		if r.start != nil && r.end != nil {
			hasCompleteRange = true
		}
	}
	if allFuture && hasCompleteRange {
		return PhasePlanned
	}

	for _, r := range ranges {
		if r.start != nil && r.start.After(day) {
			return PhasePlanned
		}
	}

	return PhaseNone
}

// courseConcluded matches the free-text course status against the concluded
// markers, tolerating case and the missing accent variant.
func courseConcluded(status string) bool {
	if status == "" {
		return false
	}
	lower := strings.ToLower(status)
	return strings.Contains(lower, "concluído") || strings.Contains(lower, "concluido")
}

// toDate strips any time-of-day component, returning a UTC midnight value.
func toDate(t *time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := toDate(t)
	return &d
}
