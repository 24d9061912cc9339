package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectSummary is the part of the request echoed on exported documents.
type ProjectSummary struct {
	EnrollmentMonths       int
	TreatmentMonths        int
	FollowupMonths         int
	ActivePhaseMonths      int
	QualificationVisitType VisitType
	InitiationVisitType    VisitType
	CloseoutVisitType      VisitType
	Vendors                int
	TotalSites             int
	TotalPatients          int
}

func SummarizeProject(p *ProjectInput) ProjectSummary {
	return ProjectSummary{
		EnrollmentMonths:       p.EnrollmentMonths,
		TreatmentMonths:        p.TreatmentMonths,
		FollowupMonths:         p.FollowupMonths,
		ActivePhaseMonths:      p.ActivePhaseDuration(),
		QualificationVisitType: p.QualificationVisitType,
		InitiationVisitType:    p.InitiationVisitType,
		CloseoutVisitType:      p.CloseoutVisitType,
		Vendors:                p.Vendors,
		TotalSites:             p.TotalSites(),
		TotalPatients:          p.TotalPatients(),
	}
}

// EstimateReport is what the xlsx and pdf exports render.
type EstimateReport struct {
	ID              uuid.UUID
	GeneratedAt     time.Time
	RateCardVersion string
	Currency        string
	Project         ProjectSummary
	Estimate        *Estimate
}
