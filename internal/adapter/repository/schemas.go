package repository

import "github.com/eslsoft/studydesk/pkg/filterexpr"

var listTasksSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"status": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Status",
				filterexpr.OpIN: "Statuses",
			},
		},
		"type": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Type",
				filterexpr.OpIN: "Types",
			},
		},
		"course_id": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "CourseID"},
		},
		"title": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TitlePrefix"},
		},
		"priority": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "Priority",
				filterexpr.OpLTE: "PriorityMax",
			},
		},
		"due_date": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGT:  "DueAfter",
				filterexpr.OpGTE: "DueFrom",
				filterexpr.OpLT:  "DueBefore",
				filterexpr.OpLTE: "DueTo",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "due_date",
		DefaultPrimaryDesc: false,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"due_date":   {Expr: "due_date", Nulls: "last"},
			"priority":   {Expr: "priority", Nulls: "last"},
			"title":      {Expr: "title", Nulls: "last"},
			"created_at": {Expr: "created_at", Nulls: "last"},
			"updated_at": {Expr: "updated_at", Nulls: "last"},
			"id":         {Expr: "id", Nulls: "last"},
		},
	},
}
