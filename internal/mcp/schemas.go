package mcp

import "agently-mcp/internal/models"

// FetchAgentsToolName is the only tool this server exposes.
const FetchAgentsToolName = "fetch_agents"

// Categories is the closed set of catalog categories accepted by the
// categories filter.
var Categories = []string{
	"Accounting",
	"Activism",
	"Acting",
	"Adventure",
	"Agriculture",
	"Animals",
	"Anthropology",
	"Archaeology",
	"Architecture",
	"Art",
	"Astronomy",
	"Auditing",
	"Automotive",
	"Automation",
	"Aviation",
	"Biology",
	"Bookkeeping",
	"Botany",
	"Broadcasting",
	"Business",
	"Cartography",
	"Ceremonies",
	"Childcare",
	"Coaching and Teaching",
	"Communication",
	"Community",
	"Competition",
	"Compliance",
	"Conservation",
	"Construction",
	"Consulting",
	"Content Creation",
	"Copywriting",
	"Counseling and Therapy",
	"Crafts",
	"Crowdsourcing",
	"Cryptocurrency",
	"Cybersecurity",
	"Dance",
	"Data Analysis",
	"Data Handling",
	"Debating",
	"Demolition",
	"Design",
	"Disaster Response and Recovery",
	"Editing",
	"Education",
	"Emergency Services",
	"Engineering",
	"Entrepreneurship",
	"Environmental Protection",
	"Esports",
	"Event Management",
	"Exploration",
	"Fact Checking",
	"Family and Care",
	"Fashion and Beauty",
	"Film",
	"Finance",
	"Fitness",
	"Food and Nutrition",
	"Forensics",
	"Fun",
	"Gaming",
	"Gardening",
	"Geography",
	"Geology",
	"Graphic Design",
	"Grooming",
	"Gym",
	"Healthcare",
	"History",
	"Hospitality",
	"Human Resources",
	"Humor",
	"Information Technology",
	"Innovation",
	"Insurance",
	"Interior Design",
	"International Relations",
	"Inventory Management",
	"Investing",
	"IT Support",
	"Journalism",
	"Language Learning",
	"Law Enforcement",
	"Lead Generation",
	"Leadership",
	"Literature and Poetry",
	"Logistics",
	"Maintenance",
	"Manufacturing",
	"Marketing",
	"Math",
	"Mental Health",
	"Military",
	"Mining",
	"Music",
	"Navigation",
	"Negotiation",
	"Network Management",
	"Observation",
	"Parenting",
	"Personal Assistant",
	"Philosophy",
	"Photography",
	"Physical Exercise",
	"Physics",
	"Planning",
	"Policy Analysis",
	"Politics",
	"Problem Solving",
	"Procurement and Sourcing",
	"Product Management",
	"Project Management",
	"Public Health",
	"Public Relations",
	"Publishing",
	"Quality Assurance",
	"Quantum Computing",
	"Real Estate",
	"Recruiting",
	"Recycling",
	"Religion",
	"Reporting",
	"Research",
	"Retail",
	"Risk Management",
	"Robotics",
	"Sales",
	"Sanitation",
	"Science",
	"Security",
	"Senior Care",
	"Service Industry",
	"Social Media",
	"Social Work",
	"Software",
	"Software Engineering",
	"Sound Design",
	"Space",
	"Sports",
	"Strategy",
	"Sustainability",
	"Supply Chain",
	"Support and Service Industry",
	"Teaching",
	"Technology",
	"Therapy",
	"Training and Tutoring",
	"Translation",
	"Transportation",
	"Tutoring",
	"UI Design",
	"Utilities",
	"UX Design",
	"Vehicle Operation",
	"Video Production",
	"Virtual Worlds",
	"Voice",
	"Volunteer",
	"Wellness and Fitness",
	"Waste Management",
	"Writing and Storytelling",
	"Travel",
	"Urban Planning",
	"Energy",
	"Telecommunications",
	"Ethics",
	"Government",
	"Pets",
}

// FetchAgentsToolSchema returns the JSON Schema for fetch_agents arguments.
// The same document is advertised by tools/list and compiled for validation.
func FetchAgentsToolSchema() map[string]interface{} {
	filter := func(description string, items map[string]interface{}) map[string]interface{} {
		return map[string]interface{}{
			"type":        "array",
			"items":       items,
			"description": description,
			"maxItems":    models.MaxFilterValues,
		}
	}
	sort := func(description string, values ...string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "string",
			"enum":        values,
			"description": description,
		}
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"page": map[string]interface{}{
				"type":        "number",
				"description": "Page number for pagination (min 1)",
				"default":     models.DefaultPage,
				"minimum":     1,
			},
			"limit": map[string]interface{}{
				"type":        "number",
				"description": "Number of items per page (min 1, max 50)",
				"default":     models.DefaultLimit,
				"minimum":     1,
				"maximum":     models.MaxLimit,
			},
			"searchTerm": map[string]interface{}{
				"type":        "string",
				"description": "Text to search in agent names/descriptions (max 250 chars)",
				"maxLength":   models.MaxSearchTerm,
			},
			"categories": filter(
				"Filter by categories. Providing multiple values acts as an AND filter (narrows results). Max 20 items.",
				map[string]interface{}{"type": "string", "enum": Categories},
			),
			"inputModes": filter(
				"Filter by input MIME Types (e.g., 'text/plain'). Providing multiple values acts as an AND filter. Max 20 items.",
				map[string]interface{}{"type": "string"},
			),
			"outputModes": filter(
				"Filter by output MIME Types (e.g., 'text/plain,image/png,video/mp4'). Providing multiple values acts as an AND filter. Max 20 items.",
				map[string]interface{}{"type": "string"},
			),
			"skillTags": filter(
				"Filter by skill tags (e.g., 'language,translation,2025'). Providing multiple values acts as an AND filter. Max 20 items.",
				map[string]interface{}{"type": "string"},
			),
			"sortByName":           sort("Sort by name, A-Z or Z-A", models.SortAZ, models.SortZA),
			"sortByCreatedAt":      sort("Sort by creation date", models.SortNewest, models.SortOldest),
			"sortByUpdatedAt":      sort("Sort by update date", models.SortNewest, models.SortOldest),
			"sortBySuccessRate":    sort("Sort by success rate", models.SortHighest, models.SortLowest),
			"sortByUsage":          sort("Sort by usage count", models.SortHighest, models.SortLowest),
			"sortByRequestPrice":   sort("Sort by average request price", models.SortHighest, models.SortLowest),
			"sortByStreamingPrice": sort("Sort by average streaming price per second", models.SortHighest, models.SortLowest),
			"isLocal": map[string]interface{}{
				"type":        "boolean",
				"description": "Only return agents that run locally and must be set up manually",
			},
			"explanation": map[string]interface{}{
				"type":        "string",
				"description": "Optional explanation for the request (free text)",
			},
		},
	}
}

// FetchAgentsTool returns the complete MCP Tool definition for fetch_agents
func FetchAgentsTool() Tool {
	return Tool{
		Name:        FetchAgentsToolName,
		Description: "Fetches the public Agently agents based on filtering, sorting, and pagination criteria. The most used agents with the highest success rates are usually the best.",
		InputSchema: FetchAgentsToolSchema(),
	}
}
