package services

import (
	"context"
	"sort"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/adapters/persistence/repositories"
	"hima-kasku/internal/core/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ============================================================
// Aggregation (pure)
// ============================================================

// StatusCounts holds per-state due counts for one user
type StatusCounts struct {
	Paid    int `json:"paid"`
	Partial int `json:"partial"`
	Unpaid  int `json:"unpaid"`
}

// Summarize counts one user's statuses across all active dues. A due absent
// from the status set still counts as Unpaid: the reporter enumerates the
// dues itself instead of trusting the status set to be complete.
func Summarize(dues []domain.Due, userID uint, statuses map[domain.StatusKey]domain.DueStatus) StatusCounts {
	var counts StatusCounts
	for _, d := range dues {
		if !d.IsActive() {
			continue
		}
		st, ok := statuses[domain.StatusKey{UserID: userID, DueID: d.ID}]
		if !ok {
			counts.Unpaid++
			continue
		}
		switch st.State {
		case domain.DueStatePaid:
			counts.Paid++
		case domain.DueStatePartial:
			counts.Partial++
		default:
			counts.Unpaid++
		}
	}
	return counts
}

// StudentSummary is one row of the admin roll-up
type StudentSummary struct {
	UserID uint         `json:"user_id"`
	Name   string       `json:"name"`
	Counts StatusCounts `json:"counts"`
}

// GlobalSummary produces one row per tracked student, ordered by display
// name ascending with locale-aware comparison. Pure: identical inputs
// always yield identical output.
func GlobalSummary(dues []domain.Due, students []domain.User, statuses map[domain.StatusKey]domain.DueStatus) []StudentSummary {
	rows := make([]StudentSummary, 0, len(students))
	for _, u := range students {
		if !u.IsStudent() {
			continue
		}
		rows = append(rows, StudentSummary{
			UserID: u.ID,
			Name:   u.Name,
			Counts: Summarize(dues, u.ID, statuses),
		})
	}

	cl := collate.New(language.Indonesian)
	sort.SliceStable(rows, func(i, j int) bool {
		return cl.CompareString(rows[i].Name, rows[j].Name) < 0
	})
	return rows
}

// ============================================================
// Dashboard assembly
// ============================================================

// ReportService assembles admin and student dashboard views
type ReportService struct {
	statusService *StatusService
	txRepo        repositories.TransactionRepository
}

// NewReportService creates a new report service
func NewReportService(statusService *StatusService, txRepo repositories.TransactionRepository) *ReportService {
	return &ReportService{
		statusService: statusService,
		txRepo:        txRepo,
	}
}

// AdminDashboardData represents the admin home view
type AdminDashboardData struct {
	TotalStudents int              `json:"total_students"`
	TotalDues     int              `json:"total_dues"`
	Students      []StudentSummary `json:"students"`
}

// GetAdminDashboard builds the global per-student roll-up
func (s *ReportService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	snap, statuses, err := s.statusService.ProjectAll(ctx)
	if err != nil {
		return nil, err
	}

	activeDues := 0
	for _, d := range snap.Dues {
		if d.IsActive() {
			activeDues++
		}
	}

	return &AdminDashboardData{
		TotalStudents: len(snap.Students),
		TotalDues:     activeDues,
		Students:      GlobalSummary(snap.Dues, snap.Students, statuses),
	}, nil
}

// DueStatusItem is one due line on the student dashboard
type DueStatusItem struct {
	DueID          uint            `json:"due_id"`
	Title          string          `json:"title"`
	RequiredAmount int64           `json:"required_amount"`
	TotalPaid      int64           `json:"total_paid"`
	Remaining      int64           `json:"remaining"`
	State          domain.DueState `json:"state"`
}

// StudentDashboardData represents the student view: summary counts,
// outstanding dues, settled dues and payment history
type StudentDashboardData struct {
	Summary      StatusCounts                  `json:"summary"`
	Outstanding  []DueStatusItem               `json:"outstanding"`
	Settled      []DueStatusItem               `json:"settled"`
	Transactions []*models.TransactionResponse `json:"transactions"`
}

// GetStudentDashboard builds one student's due status view
func (s *ReportService) GetStudentDashboard(ctx context.Context, userID uint) (*StudentDashboardData, error) {
	snap, statuses, err := s.statusService.ProjectUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := make(map[uint]string, len(snap.Dues))
	for _, d := range snap.Dues {
		titles[d.ID] = d.Title
	}

	data := &StudentDashboardData{
		Outstanding: make([]DueStatusItem, 0),
		Settled:     make([]DueStatusItem, 0),
	}
	// Only students owe dues. The projection tracks no statuses for other
	// roles, so the summary must stay empty too or the two would contradict.
	if len(snap.Students) > 0 && snap.Students[0].IsStudent() {
		data.Summary = Summarize(snap.Dues, userID, statuses)
	}

	// Iterate dues, not statuses, so the order follows the catalog
	for _, d := range snap.Dues {
		st, ok := statuses[domain.StatusKey{UserID: userID, DueID: d.ID}]
		if !ok {
			continue
		}
		item := DueStatusItem{
			DueID:          st.DueID,
			Title:          titles[st.DueID],
			RequiredAmount: st.RequiredAmount,
			TotalPaid:      st.TotalPaid,
			Remaining:      st.Remaining,
			State:          st.State,
		}
		if st.State == domain.DueStatePaid {
			data.Settled = append(data.Settled, item)
		} else {
			data.Outstanding = append(data.Outstanding, item)
		}
	}

	txns, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	data.Transactions = make([]*models.TransactionResponse, len(txns))
	for i, t := range txns {
		data.Transactions[i] = t.ToResponse()
	}

	return data, nil
}
