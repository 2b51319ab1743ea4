package filterexpr

import (
	"strings"
	"testing"
	"time"
)

type request struct {
	filter  string
	orderBy string
}

func (r request) GetFilter() string  { return r.filter }
func (r request) GetOrderBy() string { return r.orderBy }

type listTasksParams struct {
	Status      *string
	Statuses    []string
	TitlePrefix *string
	Priority    *int
	WeightMin   *float64
	DueAfter    *time.Time
	DueBefore   *time.Time
	DueFrom     *time.Time

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

var tasksSchema = ResourceSchema{
	Filter: map[string]FilterField{
		"status": {
			Kind: KindString,
			Ops:  map[Op]string{OpEQ: "Status", OpIN: "Statuses"},
		},
		"title": {
			Kind: KindString,
			Ops:  map[Op]string{OpSW: "TitlePrefix"},
		},
		"priority": {
			Kind: KindNumber,
			Ops:  map[Op]string{OpEQ: "Priority"},
		},
		"weight": {
			Kind: KindNumber,
			Ops:  map[Op]string{OpGTE: "WeightMin"},
		},
		"due_date": {
			Kind: KindTimestamp,
			Ops: map[Op]string{
				OpGT:  "DueAfter",
				OpLT:  "DueBefore",
				OpGTE: "DueFrom",
			},
		},
	},
	Order: OrderSchema{
		DefaultPrimary: "due_date",
		FallbackKey:    "id",
		Fields: map[string]OrderField{
			"due_date": {Expr: "due_date", Nulls: "last"},
			"priority": {Expr: "priority"},
			"id":       {Expr: "id"},
		},
	},
}

func TestBindFilter(t *testing.T) {
	var params listTasksParams
	req := request{
		filter: `status == "pending" && title.startsWith("Lab") && priority == 1 && weight >= 12.5 && ` +
			`due_date > timestamp("2025-01-01T00:00:00Z") && due_date < timestamp("2025-02-01T00:00:00Z")`,
	}

	if err := Bind(req, &params, tasksSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}

	if params.Status == nil || *params.Status != "pending" {
		t.Fatalf("expected Status pending, got %v", params.Status)
	}
	if params.TitlePrefix == nil || *params.TitlePrefix != "Lab" {
		t.Fatalf("expected TitlePrefix Lab, got %v", params.TitlePrefix)
	}
	if params.Priority == nil || *params.Priority != 1 {
		t.Fatalf("expected Priority 1, got %v", params.Priority)
	}
	if params.WeightMin == nil || *params.WeightMin != 12.5 {
		t.Fatalf("expected WeightMin 12.5, got %v", params.WeightMin)
	}
	wantAfter := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if params.DueAfter == nil || !params.DueAfter.Equal(wantAfter) {
		t.Fatalf("expected DueAfter %v, got %v", wantAfter, params.DueAfter)
	}
	wantBefore := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if params.DueBefore == nil || !params.DueBefore.Equal(wantBefore) {
		t.Fatalf("expected DueBefore %v, got %v", wantBefore, params.DueBefore)
	}
	if params.DueFrom != nil {
		t.Fatalf("expected DueFrom to stay nil, got %v", params.DueFrom)
	}
}

func TestBindInList(t *testing.T) {
	var params listTasksParams
	if err := Bind(request{filter: `status in ["pending", "overdue"]`}, &params, tasksSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if len(params.Statuses) != 2 || params.Statuses[0] != "pending" || params.Statuses[1] != "overdue" {
		t.Fatalf("unexpected statuses %v", params.Statuses)
	}
}

func TestBindDateOnlyTimestamp(t *testing.T) {
	var params listTasksParams
	if err := Bind(request{filter: `due_date >= timestamp("2025-04-20")`}, &params, tasksSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	want := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	if params.DueFrom == nil || !params.DueFrom.Equal(want) {
		t.Fatalf("expected DueFrom %v, got %v", want, params.DueFrom)
	}
}

func TestBindRejects(t *testing.T) {
	cases := []struct {
		name    string
		filter  string
		wantErr string
	}{
		{"or operator", `status == "pending" || priority == 1`, "only AND is allowed"},
		{"negation", `!(status == "pending")`, "only AND is allowed"},
		{"unknown field", `grade == 3`, "is not allowed"},
		{"operator not allowed", `priority >= 1`, "not allowed"},
		{"wrong literal kind", `priority == "high"`, "expected number literal"},
		{"fractional integer", `priority == 1.5`, "non-integer"},
		{"empty list", `status in []`, "must not be empty"},
		{"bad timestamp", `due_date > timestamp("yesterday")`, "RFC3339"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var params listTasksParams
			err := Bind(request{filter: tc.filter}, &params, tasksSchema)
			if err == nil {
				t.Fatalf("expected error for %q", tc.filter)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestBindOrder(t *testing.T) {
	cases := []struct {
		name          string
		orderBy       string
		primary       string
		primaryDesc   bool
		secondary     string
		secondaryDesc bool
		wantErr       bool
	}{
		{name: "defaults", primary: "due_date", secondary: "id"},
		{name: "single key desc", orderBy: "priority desc", primary: "priority", primaryDesc: true, secondary: "id"},
		{name: "two keys", orderBy: "priority, due_date desc", primary: "priority", secondary: "due_date", secondaryDesc: true},
		{name: "fallback equals primary", orderBy: "id desc", primary: "id", primaryDesc: true, secondary: "due_date"},
		{name: "unknown key", orderBy: "title", wantErr: true},
		{name: "bad direction", orderBy: "priority sideways", wantErr: true},
		{name: "duplicate key", orderBy: "priority, priority", wantErr: true},
		{name: "too many keys", orderBy: "priority, due_date, id", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var params listTasksParams
			err := Bind(request{orderBy: tc.orderBy}, &params, tasksSchema)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.orderBy)
				}
				return
			}
			if err != nil {
				t.Fatalf("Bind returned error: %v", err)
			}
			if params.PrimaryKey != tc.primary || params.PrimaryDesc != tc.primaryDesc {
				t.Fatalf("primary = %s desc=%v, want %s desc=%v", params.PrimaryKey, params.PrimaryDesc, tc.primary, tc.primaryDesc)
			}
			if params.SecondaryKey != tc.secondary || params.SecondaryDesc != tc.secondaryDesc {
				t.Fatalf("secondary = %s desc=%v, want %s desc=%v", params.SecondaryKey, params.SecondaryDesc, tc.secondary, tc.secondaryDesc)
			}
		})
	}
}

func TestBindNilBinding(t *testing.T) {
	var params *listTasksParams
	if err := Bind(request{}, params, tasksSchema); err == nil {
		t.Fatalf("expected error for nil binding")
	}
}

func TestOrderTerm(t *testing.T) {
	term, err := tasksSchema.Order.Term("due_date", true)
	if err != nil {
		t.Fatalf("Term returned error: %v", err)
	}
	if term.Expr != "due_date" || !term.Desc || term.Nulls != "last" {
		t.Fatalf("unexpected term %+v", term)
	}
	if _, err := tasksSchema.Order.Term("title", false); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
