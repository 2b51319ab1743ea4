package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// SchemaVersion is bumped whenever a table, column or index is added below.
// Version 2 added the (course_id, unit_id) composite indexes and study_sessions.course_id.
const SchemaVersion = 2

var (
	// CoursesColumns holds the columns for the "courses" table.
	CoursesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "name", Type: field.TypeString},
		{Name: "color", Type: field.TypeString},
		{Name: "instructor", Type: field.TypeString, Nullable: true},
		{Name: "schedule", Type: field.TypeString, Nullable: true},
		{Name: "location", Type: field.TypeString, Nullable: true},
		{Name: "description", Type: field.TypeString, Nullable: true},
		{Name: "archived", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// CoursesTable holds the schema information for the "courses" table.
	CoursesTable = &schema.Table{
		Name:       "courses",
		Columns:    CoursesColumns,
		PrimaryKey: []*schema.Column{CoursesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "course_owner_id", Unique: false, Columns: []*schema.Column{CoursesColumns[1]}},
		},
	}
	// UnitsColumns holds the columns for the "units" table.
	UnitsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "course_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "order_index", Type: field.TypeInt, Default: 0},
		{Name: "description", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UnitsTable holds the schema information for the "units" table.
	UnitsTable = &schema.Table{
		Name:       "units",
		Columns:    UnitsColumns,
		PrimaryKey: []*schema.Column{UnitsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "unit_owner_id", Unique: false, Columns: []*schema.Column{UnitsColumns[1]}},
			{Name: "unit_course_id", Unique: false, Columns: []*schema.Column{UnitsColumns[2]}},
		},
	}
	// NotesColumns holds the columns for the "notes" table.
	NotesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "course_id", Type: field.TypeString},
		{Name: "unit_id", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
		{Name: "tags", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// NotesTable holds the schema information for the "notes" table.
	NotesTable = &schema.Table{
		Name:       "notes",
		Columns:    NotesColumns,
		PrimaryKey: []*schema.Column{NotesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "note_owner_id", Unique: false, Columns: []*schema.Column{NotesColumns[1]}},
			{Name: "note_course_id", Unique: false, Columns: []*schema.Column{NotesColumns[2]}},
			{Name: "note_unit_id", Unique: false, Columns: []*schema.Column{NotesColumns[3]}},
			{Name: "note_course_id_unit_id", Unique: false, Columns: []*schema.Column{NotesColumns[2], NotesColumns[3]}},
		},
	}
	// FlashcardsColumns holds the columns for the "flashcards" table.
	FlashcardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "course_id", Type: field.TypeString},
		{Name: "unit_id", Type: field.TypeString},
		{Name: "question", Type: field.TypeString, Size: 2147483647},
		{Name: "answer", Type: field.TypeString, Size: 2147483647},
		{Name: "tags", Type: field.TypeJSON},
		{Name: "confidence_level", Type: field.TypeInt, Default: 1},
		{Name: "review_count", Type: field.TypeInt, Default: 0},
		{Name: "last_reviewed", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// FlashcardsTable holds the schema information for the "flashcards" table.
	FlashcardsTable = &schema.Table{
		Name:       "flashcards",
		Columns:    FlashcardsColumns,
		PrimaryKey: []*schema.Column{FlashcardsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "flashcard_owner_id", Unique: false, Columns: []*schema.Column{FlashcardsColumns[1]}},
			{Name: "flashcard_course_id", Unique: false, Columns: []*schema.Column{FlashcardsColumns[2]}},
			{Name: "flashcard_unit_id", Unique: false, Columns: []*schema.Column{FlashcardsColumns[3]}},
			{Name: "flashcard_course_id_unit_id", Unique: false, Columns: []*schema.Column{FlashcardsColumns[2], FlashcardsColumns[3]}},
		},
	}
	// TasksColumns holds the columns for the "tasks" table.
	TasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "course_id", Type: field.TypeString, Nullable: true},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "due_date", Type: field.TypeTime},
		{Name: "type", Type: field.TypeString, Default: "other"},
		{Name: "status", Type: field.TypeString, Default: "pending"},
		{Name: "priority", Type: field.TypeInt, Default: 2},
		{Name: "weight", Type: field.TypeFloat64, Nullable: true},
		{Name: "grade", Type: field.TypeFloat64, Nullable: true},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// TasksTable holds the schema information for the "tasks" table.
	TasksTable = &schema.Table{
		Name:       "tasks",
		Columns:    TasksColumns,
		PrimaryKey: []*schema.Column{TasksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "task_owner_id", Unique: false, Columns: []*schema.Column{TasksColumns[1]}},
			{Name: "task_course_id", Unique: false, Columns: []*schema.Column{TasksColumns[2]}},
			{Name: "task_due_date", Unique: false, Columns: []*schema.Column{TasksColumns[5]}},
			{Name: "task_status", Unique: false, Columns: []*schema.Column{TasksColumns[7]}},
		},
	}
	// AcademicRecordsColumns holds the columns for the "academic_records" table.
	AcademicRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "name", Type: field.TypeString},
		{Name: "term", Type: field.TypeString},
		{Name: "credits", Type: field.TypeFloat64},
		{Name: "grade", Type: field.TypeString, Nullable: true},
		{Name: "notes", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// AcademicRecordsTable holds the schema information for the "academic_records" table.
	AcademicRecordsTable = &schema.Table{
		Name:       "academic_records",
		Columns:    AcademicRecordsColumns,
		PrimaryKey: []*schema.Column{AcademicRecordsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "academicrecord_owner_id", Unique: false, Columns: []*schema.Column{AcademicRecordsColumns[1]}},
			{Name: "academicrecord_term", Unique: false, Columns: []*schema.Column{AcademicRecordsColumns[3]}},
		},
	}
	// StudySessionsColumns holds the columns for the "study_sessions" table.
	StudySessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "owner_id", Type: field.TypeString, Nullable: true},
		{Name: "course_id", Type: field.TypeString, Nullable: true},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "duration_minutes", Type: field.TypeInt, Default: 0},
		{Name: "notes", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// StudySessionsTable holds the schema information for the "study_sessions" table.
	StudySessionsTable = &schema.Table{
		Name:       "study_sessions",
		Columns:    StudySessionsColumns,
		PrimaryKey: []*schema.Column{StudySessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "studysession_owner_id", Unique: false, Columns: []*schema.Column{StudySessionsColumns[1]}},
			{Name: "studysession_course_id", Unique: false, Columns: []*schema.Column{StudySessionsColumns[2]}},
		},
	}
	// UserProfilesColumns holds the columns for the "user_profiles" table.
	UserProfilesColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "avatar", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "theme", Type: field.TypeString, Default: "system"},
		{Name: "study_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_study_date", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UserProfilesTable holds the schema information for the "user_profiles" table.
	UserProfilesTable = &schema.Table{
		Name:       "user_profiles",
		Columns:    UserProfilesColumns,
		PrimaryKey: []*schema.Column{UserProfilesColumns[0]},
	}
	// StoreMetaColumns holds the columns for the "store_meta" table.
	StoreMetaColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
	}
	// StoreMetaTable holds the schema information for the "store_meta" table.
	StoreMetaTable = &schema.Table{
		Name:       "store_meta",
		Columns:    StoreMetaColumns,
		PrimaryKey: []*schema.Column{StoreMetaColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CoursesTable,
		UnitsTable,
		NotesTable,
		FlashcardsTable,
		TasksTable,
		AcademicRecordsTable,
		StudySessionsTable,
		UserProfilesTable,
		StoreMetaTable,
	}
	// DataTables are the tables that hold user data, in dependency order.
	DataTables = Tables[:len(Tables)-1]
)

// OwnedTables are the data tables carrying an owner_id column.
func OwnedTables() []*schema.Table {
	return []*schema.Table{
		CoursesTable,
		UnitsTable,
		NotesTable,
		FlashcardsTable,
		TasksTable,
		AcademicRecordsTable,
		StudySessionsTable,
	}
}
