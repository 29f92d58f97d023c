// Package curriculum is the single source of the fixed category, level and
// role enumerations. Both server-side validation and anything rendering the
// lists import it, so the two can never drift.
package curriculum

// Role gates what a signed-in user may do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// Valid reports whether r is one of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleViewer:
		return true
	}
	return false
}

// CanUpload reports whether r may curate content.
func (r Role) CanUpload() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	case RoleViewer:
		return false
	}
	return false
}

// Categories is the fixed curriculum topic list. Order matters for display.
var Categories = []string{
	"Cloud & Internet Basics", "Azure Basics", "Data Basics", "SQL Fundamentals",
	"Python Basics", "File Formats", "Python Intermediate", "Python Key Libraries",
	"Azure Data Services", "ETL & Data Integration", "Apache Spark Core",
	"Spark Streaming", "Delta Lake", "Azure Databricks", "Data Architecture Concepts",
	"SQL Advanced", "Streaming & Messaging", "dbt & Orchestration",
	"Data Quality & Governance", "Security & Access", "DevOps & Version Control",
	"Monitoring & Observability", "Networking & Protocols", "Power BI & Reporting",
}

// Levels are the difficulty tiers a term may carry.
var Levels = []int{2, 3, 4, 5}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ValidLevel(l int) bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}
