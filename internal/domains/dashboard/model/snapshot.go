package model

import "time"

// Query names
const (
	QueryLeads               = "leads"
	QuerySubscribers         = "subscribers"
	QueryActiveSubscribers   = "active_subscribers"
	QueryBlogPosts           = "blog_posts"
	QueryPublishedPosts      = "published_posts"
	QueryJobs                = "jobs"
	QueryActiveJobs          = "active_jobs"
	QueryTestimonials        = "testimonials"
	QueryApplications        = "applications"
	QueryPendingApplications = "pending_applications"
)

// Snapshot is the admin dashboard read model. It is assembled once from
// the named count queries and never mutated afterwards.
type Snapshot struct {
	Leads               int       `json:"leads"`
	Subscribers         int       `json:"subscribers"`
	ActiveSubscribers   int       `json:"activeSubscribers"`
	BlogPosts           int       `json:"blogPosts"`
	PublishedPosts      int       `json:"publishedPosts"`
	Jobs                int       `json:"jobs"`
	ActiveJobs          int       `json:"activeJobs"`
	Testimonials        int       `json:"testimonials"`
	Applications        int       `json:"applications"`
	PendingApplications int       `json:"pendingApplications"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// NewSnapshot merges query results by name. Unknown names are ignored.
func NewSnapshot(counts map[string]int, at time.Time) Snapshot {
	return Snapshot{
		Leads:               counts[QueryLeads],
		Subscribers:         counts[QuerySubscribers],
		ActiveSubscribers:   counts[QueryActiveSubscribers],
		BlogPosts:           counts[QueryBlogPosts],
		PublishedPosts:      counts[QueryPublishedPosts],
		Jobs:                counts[QueryJobs],
		ActiveJobs:          counts[QueryActiveJobs],
		Testimonials:        counts[QueryTestimonials],
		Applications:        counts[QueryApplications],
		PendingApplications: counts[QueryPendingApplications],
		GeneratedAt:         at,
	}
}
